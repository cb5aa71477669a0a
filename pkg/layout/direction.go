package layout

import (
	"strings"

	errs "github.com/matzehuels/cattree/pkg/errors"
)

// Direction is the flow of the tree.
type Direction string

const (
	// TopBottom places children below their parent.
	TopBottom Direction = "TB"
	// LeftRight places children to the right of their parent.
	LeftRight Direction = "LR"
)

// String returns the Graphviz rankdir value.
func (d Direction) String() string { return string(d) }

// Label returns the human-readable name used in the UI.
func (d Direction) Label() string {
	if d == LeftRight {
		return "Horizontal"
	}
	return "Vertical"
}

// Toggle returns the other direction.
func (d Direction) Toggle() Direction {
	if d == LeftRight {
		return TopBottom
	}
	return LeftRight
}

// ParseDirection parses "TB" or "LR" case-insensitively. The UI names
// "vertical" and "horizontal" are accepted as aliases.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TB", "VERTICAL":
		return TopBottom, nil
	case "LR", "HORIZONTAL":
		return LeftRight, nil
	}
	return "", errs.New(errs.ErrCodeInvalidDirection, "invalid direction %q (want TB or LR)", s)
}
