package server

// DefaultMaxElementDepth bounds element tree searches. It guards against
// pathological view hierarchies; it is not a tuned value.
const DefaultMaxElementDepth = 10

// FindElement walks the tree depth-first and returns the first element
// matching pred. Elements deeper than maxDepth (root is depth 0) are not
// visited.
func FindElement(root Element, pred func(Element) bool, maxDepth int) (Element, bool) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxElementDepth
	}

	type frame struct {
		el    Element
		depth int
	}
	stack := []frame{{el: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if pred(top.el) {
			return top.el, true
		}
		if top.depth >= maxDepth {
			continue
		}
		// Push in reverse so the first child is visited first.
		for i := len(top.el.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{el: top.el.Children[i], depth: top.depth + 1})
		}
	}

	return Element{}, false
}

// HasRole returns a predicate matching elements by role.
func HasRole(role string) func(Element) bool {
	return func(e Element) bool {
		return e.Role == role
	}
}
