package models

// ValueType is the structural type of a catalog field.
type ValueType string

const (
	ValueNumber  ValueType = "number"
	ValueString  ValueType = "string"
	ValueBoolean ValueType = "boolean"
	ValueObject  ValueType = "object"
	ValueArray   ValueType = "array"
)

// Format is the display format inferred for a numeric field.
type Format string

const (
	FormatNone       Format = ""
	FormatCurrency   Format = "currency"
	FormatPercentage Format = "percentage"
	FormatDecimal    Format = "decimal"
	FormatInteger    Format = "integer"
)

// FieldDescriptor describes one addressable field of a business record.
// ID always equals Path.
type FieldDescriptor struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Path      string    `json:"path"`
	ValueType ValueType `json:"type"`
	Format    Format    `json:"format,omitempty"`
}
