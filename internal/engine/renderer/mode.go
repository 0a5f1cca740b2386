package renderer

import "fmt"

// Mode selects a shading variant.
type Mode int

const (
	ModeSolid Mode = iota
	ModePoints
	ModeWireframe
	ModeFlat
	ModeRandom
	ModeDepth
	ModeNormals
	ModeGouraud
	ModePhong
	ModeTextured
)

// variant is a registry entry.
type variant struct {
	name    string
	program Program
	// cull reports whether backface culling applies. Point and line modes
	// show every primitive.
	cull bool
}

var registry = map[Mode]variant{
	ModeSolid:     {"solid", solid{}, true},
	ModePoints:    {"points", points{}, false},
	ModeWireframe: {"wireframe", wireframe{}, false},
	ModeFlat:      {"flat", flat{}, true},
	ModeRandom:    {"random", random{}, true},
	ModeDepth:     {"depth", depth{}, true},
	ModeNormals:   {"normals", normals{}, true},
	ModeGouraud:   {"gouraud", gouraud{}, true},
	ModePhong:     {"phong", phong{}, true},
	ModeTextured:  {"textured", textured{}, true},
}

func (m Mode) String() string {
	if v, ok := registry[m]; ok {
		return v.name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Modes returns every registered mode in declaration order.
func Modes() []Mode {
	modes := make([]Mode, 0, len(registry))
	for m := ModeSolid; m <= ModeTextured; m++ {
		modes = append(modes, m)
	}
	return modes
}

// ParseMode maps a configuration name to a Mode.
func ParseMode(name string) (Mode, error) {
	for m, v := range registry {
		if v.name == name {
			return m, nil
		}
	}
	return ModeSolid, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// ProgramFor returns the program registered for m.
func ProgramFor(m Mode) (Program, error) {
	v, ok := registry[m]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return v.program, nil
}
