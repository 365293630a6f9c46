// Package layout holds the ordered widget collection a dashboard renders from,
// the widget palette, and layout preset files.
package layout

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
)

// IDPrefix starts every generated widget id.
const IDPrefix = "widget-"

// NewWidget returns a widget of the given kind with a fresh time-ordered id,
// the default 2x2 size and no bound fields.
func NewWidget(kind models.WidgetKind, title string) models.Widget {
	return models.Widget{
		ID:     newID(),
		Kind:   kind,
		Title:  title,
		Fields: []string{},
		Width:  models.DefaultWidth,
		Height: models.DefaultHeight,
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// v7 only fails when the random source does
		return fmt.Sprintf("%s%d", IDPrefix, time.Now().UnixNano())
	}
	return IDPrefix + id.String()
}

// Collection is an immutable ordered set of widgets keyed by id. Every
// mutator returns a new Collection and leaves the receiver untouched, so a
// caller can keep the previous value for undo.
type Collection struct {
	widgets []models.Widget
}

// FromWidgets builds a collection in the given order. Duplicate ids are
// rejected.
func FromWidgets(ws []models.Widget) (Collection, error) {
	c := Collection{}
	for _, w := range ws {
		var err error
		if c, err = c.Append(w); err != nil {
			return Collection{}, err
		}
	}
	return c, nil
}

// Len returns the number of widgets.
func (c Collection) Len() int { return len(c.widgets) }

// Widgets returns a copy of the widgets in order.
func (c Collection) Widgets() []models.Widget {
	out := make([]models.Widget, len(c.widgets))
	for i, w := range c.widgets {
		out[i] = w.Clone()
	}
	return out
}

// IDs returns the widget ids in order.
func (c Collection) IDs() []string {
	out := make([]string, len(c.widgets))
	for i, w := range c.widgets {
		out[i] = w.ID
	}
	return out
}

// Get returns the widget with the given id.
func (c Collection) Get(id string) (models.Widget, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.widgets[i].Clone(), true
	}
	return models.Widget{}, false
}

// Append adds w at the end. A duplicate id is a caller bug and is reported
// as *errs.DuplicateIDError.
func (c Collection) Append(w models.Widget) (Collection, error) {
	if c.indexOf(w.ID) >= 0 {
		return c, errs.NewDuplicateIDError(w.ID)
	}
	out := make([]models.Widget, len(c.widgets), len(c.widgets)+1)
	copy(out, c.widgets)
	return Collection{widgets: append(out, w.Clone())}, nil
}

// Remove drops the widget with the given id. Absent ids are ignored.
func (c Collection) Remove(id string) Collection {
	i := c.indexOf(id)
	if i < 0 {
		return c
	}
	out := make([]models.Widget, 0, len(c.widgets)-1)
	out = append(out, c.widgets[:i]...)
	out = append(out, c.widgets[i+1:]...)
	return Collection{widgets: out}
}

// Update replaces the widget whose id matches w.ID in place. Absent ids are
// ignored.
func (c Collection) Update(w models.Widget) Collection {
	i := c.indexOf(w.ID)
	if i < 0 {
		return c
	}
	out := make([]models.Widget, len(c.widgets))
	copy(out, c.widgets)
	out[i] = w.Clone()
	return Collection{widgets: out}
}

// Reorder moves movedID to the position targetID held before the move. The
// relative order of every other widget is kept. Equal or unknown ids leave
// the collection unchanged.
func (c Collection) Reorder(movedID, targetID string) Collection {
	if movedID == targetID {
		return c
	}
	from, to := c.indexOf(movedID), c.indexOf(targetID)
	if from < 0 || to < 0 {
		return c
	}

	moved := c.widgets[from]
	rest := make([]models.Widget, 0, len(c.widgets)-1)
	rest = append(rest, c.widgets[:from]...)
	rest = append(rest, c.widgets[from+1:]...)

	out := make([]models.Widget, 0, len(c.widgets))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return Collection{widgets: out}
}

func (c Collection) indexOf(id string) int {
	for i, w := range c.widgets {
		if w.ID == id {
			return i
		}
	}
	return -1
}
