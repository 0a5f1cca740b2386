package framebuffer

// StencilFunc compares a fragment's stencil reference against the stored
// value.
type StencilFunc int

const (
	StencilAlways StencilFunc = iota
	StencilNever
	StencilLess
	StencilLessEqual
	StencilEqual
	StencilNotEqual
	StencilGreaterEqual
	StencilGreater
)

// Compare reports whether ref passes against stored.
func (f StencilFunc) Compare(ref, stored uint8) bool {
	switch f {
	case StencilNever:
		return false
	case StencilLess:
		return ref < stored
	case StencilLessEqual:
		return ref <= stored
	case StencilEqual:
		return ref == stored
	case StencilNotEqual:
		return ref != stored
	case StencilGreaterEqual:
		return ref >= stored
	case StencilGreater:
		return ref > stored
	}
	return true
}

// Tests toggles the per-fragment tests run by Write.
type Tests struct {
	Scissor bool
	Alpha   bool
	Stencil bool
	Depth   bool

	// AlphaRef rejects colors with lower alpha.
	AlphaRef    uint8
	StencilFunc StencilFunc
}

// DefaultTests enables only the depth test.
func DefaultTests() Tests {
	return Tests{Depth: true, StencilFunc: StencilAlways}
}
