package parser

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses the tree rooted at node in depth-first order.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, f := range n.Functions {
			Walk(f, v)
		}

	case *Function:
		if n.Parameter != nil {
			Walk(n.Parameter, v)
		}
		for _, d := range n.Variables {
			Walk(d, v)
		}
		for _, s := range n.Statements {
			Walk(s, v)
		}

	case *Assignment:
		Walk(n.Value, v)

	case *If:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *Return:
		Walk(n.Value, v)

	case *Compound:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *RelExpr:
		Walk(n.Left, v)
		Walk(n.Right, v)

	case *Call:
		if n.Arg != nil {
			Walk(n.Arg, v)
		}

	case *Binary:
		Walk(n.X, v)
		Walk(n.Y, v)
	}
}

// Count returns the number of nodes in the tree rooted at node.
func Count(node Node) int {
	n := 0
	Walk(node, func(Node) bool {
		n++
		return true
	})
	return n
}
