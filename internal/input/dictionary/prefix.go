package dictionary

import "github.com/dshills/stratagem/internal/input/key"

// prefixTree indexes sequences by direction for prefix lookup.
// Each node has one child slot per direction.
type prefixTree struct {
	root *prefixNode
}

type prefixNode struct {
	children [4]*prefixNode

	// key is set on the node that terminates an entry's sequence.
	key string
}

func newPrefixTree() *prefixTree {
	return &prefixTree{root: &prefixNode{}}
}

// slot returns the child index for d. d must be valid.
func slot(d key.Direction) int {
	return int(d - key.Up)
}

// insert adds a sequence terminating at k. The caller guarantees the
// sequence is valid and not already present.
func (t *prefixTree) insert(seq key.Sequence, k string) {
	node := t.root
	for _, d := range seq {
		i := slot(d)
		child := node.children[i]
		if child == nil {
			child = &prefixNode{}
			node.children[i] = child
		}
		node = child
	}
	node.key = k
}

// find returns the node reached by following seq, or nil.
func (t *prefixTree) find(seq key.Sequence) *prefixNode {
	node := t.root
	for _, d := range seq {
		if !d.Valid() {
			return nil
		}
		node = node.children[slot(d)]
		if node == nil {
			return nil
		}
	}
	return node
}

// collect appends every key at or below n.
func (n *prefixNode) collect(out []string) []string {
	if n.key != "" {
		out = append(out, n.key)
	}
	for _, child := range n.children {
		if child != nil {
			out = child.collect(out)
		}
	}
	return out
}

func (n *prefixNode) hasChildren() bool {
	for _, child := range n.children {
		if child != nil {
			return true
		}
	}
	return false
}
