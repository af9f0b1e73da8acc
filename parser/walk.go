package parser

// Inspect traverses the tree rooted at node depth-first, left before
// right. fn receives each node together with the field in effect for it:
// the node's own field, else that of the nearest enclosing field group,
// else Implicit. If fn returns false the node's children are skipped.
func Inspect(node Node, fn func(n Node, field string) bool) {
	inspect(node, Implicit, fn)
}

func inspect(n Node, scope string, fn func(Node, string) bool) {
	if n == nil {
		return
	}
	field := n.FieldName()
	if field == "" || field == Implicit {
		field = scope
	}
	if !fn(n, field) {
		return
	}
	if e, ok := n.(*Expression); ok {
		inspect(e.Left, field, fn)
		inspect(e.Right, field, fn)
	}
}

// Leaves returns the terms, ranges and regexes under node in source order.
func Leaves(node Node) []Node {
	var leaves []Node
	Inspect(node, func(n Node, _ string) bool {
		if _, ok := n.(*Expression); !ok {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}
