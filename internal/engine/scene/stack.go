package scene

import "github.com/Faultbox/midgard-sr/pkg/math"

// MatrixStack accumulates model transforms during scene traversal. The top
// is the current model transform matrix.
type MatrixStack struct {
	stack []math.Mat4
}

// NewMatrixStack returns a stack holding the identity.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{stack: []math.Mat4{math.Identity()}}
}

// Push duplicates the top.
func (s *MatrixStack) Push() {
	s.stack = append(s.stack, s.Top())
}

// Pop discards the top. The root entry is never removed; Pop reports false
// when asked to.
func (s *MatrixStack) Pop() bool {
	if len(s.stack) <= 1 {
		return false
	}
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

// Top returns the current matrix.
func (s *MatrixStack) Top() math.Mat4 {
	return s.stack[len(s.stack)-1]
}

// Load replaces the top.
func (s *MatrixStack) Load(m math.Mat4) {
	s.stack[len(s.stack)-1] = m
}

// Mult post-multiplies the top by m.
func (s *MatrixStack) Mult(m math.Mat4) {
	s.Load(s.Top().Mul(m))
}

// Depth returns the number of entries.
func (s *MatrixStack) Depth() int {
	return len(s.stack)
}

// Reset drops everything but a fresh identity root.
func (s *MatrixStack) Reset() {
	s.stack = append(s.stack[:0], math.Identity())
}
