package arith

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Nodes are
// immutable once built; each composite node exclusively owns its children.
type node struct {
	kind nodeKind

	// val is the payload of a nodeConst.
	val float64
	// name is the identifier of a nodeVar or the target of an assignment.
	name string

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeConst // push val
	nodeVar   // push lookup(name), 0 if unset

	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
	nodeAnd // 1 if left and right are both nonzero, else 0
	nodeOr  // 1 if either left or right is nonzero, else 0

	nodeAssign    // evaluate right, store into name
	nodeAddAssign // add right to name's value, store
	nodeSubAssign // sub right from name's value, store
	nodeMulAssign // mul name's value by right, store
	nodeDivAssign // div name's value by right, store
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeConst:
		return "Const"
	case nodeVar:
		return "Var"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodePow:
		return "Pow"
	case nodeAnd:
		return "And"
	case nodeOr:
		return "Or"
	case nodeAssign:
		return "Assign"
	case nodeAddAssign:
		return "AddAssign"
	case nodeSubAssign:
		return "SubAssign"
	case nodeMulAssign:
		return "MulAssign"
	case nodeDivAssign:
		return "DivAssign"
	}
	return "nodeKind(" + strconv.Itoa(int(k)) + ")"
}

// opString gives the source spelling of an operator kind.
func (k nodeKind) opString() string {
	switch k {
	case nodeAdd:
		return "+"
	case nodeSub:
		return "-"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodePow:
		return "^"
	case nodeAnd:
		return "&&"
	case nodeOr:
		return "||"
	case nodeAssign:
		return "="
	case nodeAddAssign:
		return "+="
	case nodeSubAssign:
		return "-="
	case nodeMulAssign:
		return "*="
	case nodeDivAssign:
		return "/="
	}
	panic("arith: no operator for node kind " + k.String())
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes a fully parenthesized rendering of the tree, so that grouping
// is visible in the output.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeConst:
		b.WriteString(strconv.FormatFloat(n.val, 'g', -1, 64))
	case nodeVar:
		b.WriteString(n.name)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow, nodeAnd, nodeOr:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.kind.opString())
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	case nodeAssign, nodeAddAssign, nodeSubAssign, nodeMulAssign, nodeDivAssign:
		// Assignment only occurs at the root and cannot be parenthesized.
		b.WriteString(n.name)
		b.WriteByte(' ')
		b.WriteString(n.kind.opString())
		b.WriteByte(' ')
		n.right.fmt(b)
	default:
		panic("arith: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
