package ocean

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned for mode ids or names outside the known set.
var ErrUnknownMode = errors.New("unknown visualization mode")

// Mode is a debug visualization mode. The integer value is passed to the
// fragment stage as the "mode" uniform.
type Mode int32

const (
	ModeBaseColor Mode = iota
	ModeNormals
	ModeWireframe
	ModeHeatmap
)

// ModeInfo describes a mode for UI collaborators.
type ModeInfo struct {
	Mode Mode
	Name string
	Keys []string // Keyboard shortcuts, lower case
}

var modes = []ModeInfo{
	{Mode: ModeBaseColor, Name: "Base Color", Keys: []string{"1", "b"}},
	{Mode: ModeNormals, Name: "Normals", Keys: []string{"2", "n"}},
	{Mode: ModeWireframe, Name: "Wireframe", Keys: []string{"3", "w"}},
	{Mode: ModeHeatmap, Name: "Heatmap", Keys: []string{"4", "h"}},
}

// Modes returns every mode in id order.
func Modes() []ModeInfo {
	out := make([]ModeInfo, len(modes))
	copy(out, modes)
	return out
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= ModeBaseColor && int(m) < len(modes)
}

// String returns the display name.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int32(m))
	}
	return modes[m].Name
}

// ModeByKey returns the mode bound to a keyboard shortcut.
func ModeByKey(key string) (Mode, bool) {
	key = strings.ToLower(key)
	for _, info := range modes {
		for _, k := range info.Keys {
			if k == key {
				return info.Mode, true
			}
		}
	}
	return 0, false
}

// ParseMode accepts a display name ("Base Color"), a compact name
// ("basecolor", "base_color") or an id ("2").
func ParseMode(s string) (Mode, error) {
	norm := normalizeName(s)
	for _, info := range modes {
		if normalizeName(info.Name) == norm || fmt.Sprint(int32(info.Mode)) == norm {
			return info.Mode, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}
