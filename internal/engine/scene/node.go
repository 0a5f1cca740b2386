package scene

import (
	"github.com/Faultbox/midgard-sr/internal/engine/lighting"
	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// Node is a minimal scene graph entry: an optional model and light placed by
// a local transform relative to the parent.
type Node struct {
	Name      string
	Model     *model.Model3D
	Light     *lighting.Light
	Transform math.Mat4
	Hidden    bool
	Children  []*Node
}

// NewNode returns a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Transform: math.Identity()}
}

// AddChild appends child and returns it.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Traverse walks the subtree depth first, pushing each local transform on
// the context matrix stack and queueing models and lights with the
// accumulated transform.
func (n *Node) Traverse(ctx *Context) {
	if n == nil || n.Hidden {
		return
	}
	stack := ctx.Stack()
	stack.Push()
	defer stack.Pop()

	stack.Mult(n.Transform)
	cmtm := stack.Top()

	if q := ctx.Queue(); q != nil {
		if n.Model != nil {
			q.Add(n.Model, cmtm)
		}
		if n.Light != nil {
			q.AddLight(n.Light.Transform(cmtm))
		}
	}
	for _, child := range n.Children {
		child.Traverse(ctx)
	}
}
