package engine

// Node is an element of the scene tree. A node has at most one parent and
// owns its children. Nodes are created through their New* constructors.
type Node interface {
	Name() string
	Parent() Node
	Children() []Node
	ChildCount() int
	AddChild(child Node)

	base() *NodeBase
}

// NodeBase implements the tree bookkeeping shared by every node type.
type NodeBase struct {
	owner    Node
	name     string
	parent   Node
	children []Node
}

func (n *NodeBase) init(owner Node, name string) {
	n.owner = owner
	n.name = name
}

// Name returns the node name.
func (n *NodeBase) Name() string {
	return n.name
}

// SetName changes the node name.
func (n *NodeBase) SetName(name string) {
	n.name = name
}

// Parent returns the parent node, or nil for a detached node or the root.
func (n *NodeBase) Parent() Node {
	return n.parent
}

// Children returns the direct children in insertion order.
func (n *NodeBase) Children() []Node {
	return n.children
}

// ChildCount returns the number of direct children.
func (n *NodeBase) ChildCount() int {
	return len(n.children)
}

// AddChild attaches child as the last child of n.
// A child that already has a parent is left where it is.
func (n *NodeBase) AddChild(child Node) {
	cb := child.base()
	if cb.parent != nil || cb == n {
		return
	}
	cb.parent = n.owner
	n.children = append(n.children, child)
}

func (n *NodeBase) base() *NodeBase {
	return n
}

// Walk visits n and every descendant depth-first, parents before children.
func Walk(n Node, fn func(Node)) {
	fn(n)
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}
