package arith

import (
	"strings"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil
// if the two ASTs are equal.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeConst:
		if n.val != m.val {
			return n, m
		}
	case nodeVar:
		if n.name != m.name {
			return n, m
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow, nodeAnd, nodeOr:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	case nodeAssign, nodeAddAssign, nodeSubAssign, nodeMulAssign, nodeDivAssign:
		if n.name != m.name {
			return n, m
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	default:
		panic("invalid node kind " + n.kind.String())
	}
	return nil, nil
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(x)", "x"},
		{"nested-paren", "(((x)))", "x"},
		{"spaces", "  1 +  2\t", "1+2"},

		{"add-right", "1+2+3", "1+(2+3)"},
		{"sub-right", "10 - 3 - 2", "10 - (3 - 2)"},
		{"div-right", "100 / 10 / 2", "100 / (10 / 2)"},
		{"mul-right", "a*b*c", "a*(b*c)"},
		{"pow-right", "2^3^2", "2^(3^2)"},

		{"precedence", "2 + 3 * 4", "2 + (3 * 4)"},
		{"precedence-rev", "3 * 4 + 2", "(3 * 4) + 2"},
		{"product-tier", "2 ^ 3 * 4", "2 ^ (3 * 4)"},
		{"and-mul-tier", "1 && 2 * 3", "1 && (2 * 3)"},
		{"or-and-tier", "1 || 0 && 0", "1 || (0 && 0)"},
		{"grouping", "(2 + 3) * 4", "(2 + 3) * (4)"},

		{"assign", "y = 1 + 2 * x", "y = 1 + (2 * x)"},
		{"add-assign", "x += 2 + 3", "x += (2 + 3)"},
		{"div-assign", "x /= 2 * 3", "x /= (2 * 3)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := Parse(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a.n, d, c.b, b.n, e)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    *node
	}{
		{
			name: "assign",
			src:  "x = 5",
			n: &node{
				kind: nodeAssign,
				name: "x",
				right: &node{
					kind: nodeConst,
					val:  5,
				},
			},
		},
		{
			name: "precedence",
			src:  "2 + 3 * 4",
			n: &node{
				kind: nodeAdd,
				left: &node{kind: nodeConst, val: 2},
				right: &node{
					kind:  nodeMul,
					left:  &node{kind: nodeConst, val: 3},
					right: &node{kind: nodeConst, val: 4},
				},
			},
		},
		{
			name: "dot-leading",
			src:  ".5",
			n:    &node{kind: nodeConst, val: 0.5},
		},
		{
			name: "signed-literal",
			src:  "-2",
			n:    &node{kind: nodeConst, val: -2},
		},
		{
			name: "sub-signed",
			src:  "2 - -3",
			n: &node{
				kind:  nodeSub,
				left:  &node{kind: nodeConst, val: 2},
				right: &node{kind: nodeConst, val: -3},
			},
		},
		{
			name: "exponent",
			src:  "1.5e2",
			n:    &node{kind: nodeConst, val: 150},
		},
		{
			name: "and",
			src:  "a && b2",
			n: &node{
				kind:  nodeAnd,
				left:  &node{kind: nodeVar, name: "a"},
				right: &node{kind: nodeVar, name: "b2"},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			d, e := a.n.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\twant %v which has %v\n\tgot  %v which has %v from %q", c.n, e, a.n, d, c.src)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rem  string
	}{
		{"trailing-operand", "2 +", "+"},
		{"two-literals", "2 2", "2"},
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"double-eq", "x == 3", "== 3"},
		{"unclosed", "(2 + 3", "(2 + 3"},
		{"stray-close", "2)", ")"},
		{"junk", "$x", "$x"},
		{"assign-no-rhs", "x =", "="},
		{"compound-on-group", "(x) *= 3", "*= 3"},
		{"bare-op", "* 3", "* 3"},
		{"implicit-mul", "2 x", "x"},
		{"double-star", "2 ** 3", "** 3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a.n)
			}
			serr, ok := err.(*SyntaxError)
			if !ok {
				t.Fatalf("wrong error type from %q: want *SyntaxError, got %#v", c.src, err)
			}
			if serr.Remainder != c.rem {
				t.Errorf("wrong remainder from %q: want %q, got %q", c.src, c.rem, serr.Remainder)
			}
			if serr.Pos() < 1 {
				t.Errorf("nonpositive position from %q: %d", c.src, serr.Pos())
			}
		})
	}
}

func TestParseDepthLimit(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"chain", strings.Repeat("1+", maxDepth) + "1"},
		{"parens", strings.Repeat("(", maxDepth) + "1" + strings.Repeat(")", maxDepth)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if a != nil {
				t.Error("parsed non-nil expression")
			}
			if _, ok := err.(*DepthError); !ok {
				t.Errorf("wrong error type: want *DepthError, got %#v", err)
			}
		})
	}
}

func TestVars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars []string
	}{
		{"none", "1+2+3", nil},
		{"read", "1 + 2 * x", []string{"x"}},
		{"reuse", "x + y + x", []string{"x", "y"}},
		{"assigned", "y = z + 1", []string{"y", "z"}},
		{"sort", "z+y+x+w+v+u+t+s+r+q+p+o+n+m+l+k+j+i+h+g+f+e+d+c+b+a", strings.Fields("a b c d e f g h i j k l m n o p q r s t u v w x y z")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q didn't parse: %v", c.src, err)
			}
			vars := a.Vars()
			if len(vars) != len(c.vars) {
				t.Fatalf("%q gave wrong variable names:\n\twant %q\n\tgot  %q", c.src, c.vars, vars)
			}
			for i := range vars {
				if vars[i] != c.vars[i] {
					t.Errorf("%q gave wrong variable names:\n\twant %q\n\tgot  %q", c.src, c.vars, vars)
					break
				}
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"constant", "5"},
		{"fraction", ".5"},
		{"variable", "x"},
		{"sub-chain", "10 - 3 - 2"},
		{"div-chain", "100 / 10 / 2"},
		{"mixed", "2 + 3 * 4 ^ 2"},
		{"logic", "1 && 0 || 2"},
		{"grouping", "(2 + 3) * 4"},
		{"assign", "y = 1 + 2 * x"},
		{"compound", "x /= 2 - -3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			s := a.String()
			b, err := Parse(s)
			if err != nil {
				t.Fatalf("%q -> %q failed to parse: %v", c.src, s, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.src, a.n, d, s, b.n, e)
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"constant", "5"},
		{"chain", "1+2+3+4+5+6+7+8"},
		{"mixed", "y = 1 + 2 * x ^ 2 - (3 / z)"},
		{"logic", "a && b || c && d"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Parse(c.src)
			}
		})
	}
}
