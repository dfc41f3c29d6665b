package scene

import (
	"fmt"
	"strings"
)

// Focus selects which of the two demo objects receives continuous rotation.
// It is a closed set; a switch over Focus must handle every value.
type Focus uint8

const (
	CubeFocus Focus = iota
	SphereFocus
)

// Toggle returns the other focus value.
func (f Focus) Toggle() Focus {
	switch f {
	case CubeFocus:
		return SphereFocus
	case SphereFocus:
		return CubeFocus
	}
	panic(fmt.Sprintf("scene: unknown focus %d", f))
}

func (f Focus) String() string {
	switch f {
	case CubeFocus:
		return "cube"
	case SphereFocus:
		return "sphere"
	}
	return fmt.Sprintf("Focus(%d)", uint8(f))
}

// ParseFocus reads "cube" or "sphere" (case-insensitive, surrounding space ignored).
func ParseFocus(s string) (Focus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cube":
		return CubeFocus, nil
	case "sphere":
		return SphereFocus, nil
	}
	return CubeFocus, fmt.Errorf("unknown focus %q (want cube or sphere)", s)
}
