package render

import "strings"

// Node is one level of rendered output. Its items are text fragments and
// nested nodes, kept separate until the tree is flattened so that transforms
// registered on a node apply to exactly its own subtree.
type Node struct {
	parent     *Node
	items      []item
	binding    *binding
	transforms []func(string) string
}

type item struct {
	text string
	node *Node
}

type binding struct {
	id    uint64
	value any
}

func newNode(parent *Node) *Node {
	n := &Node{parent: parent}
	if parent != nil {
		parent.items = append(parent.items, item{node: n})
	}

	return n
}

func (n *Node) appendText(s string) {
	if s != "" {
		n.items = append(n.items, item{text: s})
	}
}

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the nested nodes of n in order.
func (n *Node) Children() []*Node {
	var out []*Node

	for _, it := range n.items {
		if it.node != nil {
			out = append(out, it.node)
		}
	}

	return out
}

// Text flattens the subtree rooted at n. Transforms run bottom-up: a node's
// transforms see the already-transformed text of its children, and several
// transforms on one node run in registration order.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}

	var b strings.Builder

	for _, it := range n.items {
		if it.node != nil {
			b.WriteString(it.node.Text())
		} else {
			b.WriteString(it.text)
		}
	}

	s := b.String()
	for _, fn := range n.transforms {
		s = fn(s)
	}

	return s
}

// String is an alias for [Node.Text].
func (n *Node) String() string { return n.Text() }

// Fragments returns the text leaves of the subtree in document order,
// without transforms applied.
func (n *Node) Fragments() []string {
	var out []string

	var walk func(*Node)
	walk = func(n *Node) {
		for _, it := range n.items {
			if it.node != nil {
				walk(it.node)
			} else {
				out = append(out, it.text)
			}
		}
	}

	if n != nil {
		walk(n)
	}

	return out
}

// lookup returns the value bound to id by the nearest ancestor of n,
// excluding n itself.
func (n *Node) lookup(id uint64) (any, bool) {
	for p := n.parent; p != nil; p = p.parent {
		if p.binding != nil && p.binding.id == id {
			return p.binding.value, true
		}
	}

	return nil, false
}
