package record

import (
	"strconv"
	"strings"
)

// PathSeparator joins the segments of a field path.
const PathSeparator = "."

// Resolve walks a dotted path from root. Mapping segments are looked up by
// key, sequence segments must be a non-negative index. Any missing segment
// yields (nil, false).
func Resolve(root any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	cur := root
	for _, seg := range strings.Split(path, PathSeparator) {
		switch Classify(cur) {
		case NodeMapping:
			v, ok := cur.(*Map).Get(seg)
			if !ok {
				return nil, false
			}
			cur = v
		case NodeSequence:
			items := cur.([]any)
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(items) {
				return nil, false
			}
			cur = items[i]
		default:
			return nil, false
		}
	}

	if cur == nil {
		return nil, false
	}
	return cur, true
}

// LastSegment returns the final segment of a dotted path.
func LastSegment(path string) string {
	if i := strings.LastIndex(path, PathSeparator); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Category returns the segment before the first separator.
func Category(path string) string {
	if i := strings.Index(path, PathSeparator); i >= 0 {
		return path[:i]
	}
	return path
}
