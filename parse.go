package arith

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// The grammar, by precedence level from lowest to highest:
//
//	varname = letter , { letter | digit }
//	start   = varname , ("=" | "+=" | "-=" | "*=" | "/=") , term | term
//	term    = product , ("+" | "-") , term | product
//	product = factor , ("*" | "/" | "^" | "&&" | "||") , product | factor
//	factor  = "(" , term , ")" | varname | number
//
// Alternatives are tried in order and the first full match wins. Whitespace
// is skipped between tokens. term and product recurse on their own
// right-hand side, so operators at one precedence level group from the
// right: a-b-c parses as a-(b-c). This grouping is part of the language,
// not an accident of the implementation.

// Expr is a parsed expression that can be evaluated against an Env.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names the expression reads or assigns.
	names []string
}

// maxDepth bounds the nesting and operator-chain depth of one line, so that
// hostile input produces an error instead of exhausting the stack.
const maxDepth = 10000

// parser carries the cursor over one line of input. Rules advance pos on
// success and restore it when an alternative fails.
type parser struct {
	src   string
	pos   int
	depth int
	names map[string]bool
}

// Parse parses one line of input. The parse succeeds only if the grammar
// consumes the entire line; otherwise the error is a *SyntaxError carrying
// the unconsumed remainder, or a *DepthError if the line nests beyond the
// parser's limit.
func Parse(src string) (*Expr, error) {
	p := parser{src: src, names: make(map[string]bool)}
	n, err := p.start()
	if err != nil {
		return nil, err
	}
	p.space()
	if n == nil || p.pos < len(p.src) {
		return nil, &SyntaxError{Col: p.col(), Remainder: p.src[p.pos:]}
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

var assignOps = [...]struct {
	tok  string
	kind nodeKind
}{
	{"=", nodeAssign},
	{"+=", nodeAddAssign},
	{"-=", nodeSubAssign},
	{"*=", nodeMulAssign},
	{"/=", nodeDivAssign},
}

// start parses the entry rule: an assignment to a varname, or a bare term.
func (p *parser) start() (*node, error) {
	mark := p.pos
	if name, ok := p.varname(); ok {
		for _, op := range assignOps {
			at := p.pos
			if !p.lit(op.tok) {
				p.pos = at
				continue
			}
			rhs, err := p.term()
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				p.pos = at
				continue
			}
			p.names[name] = true
			return &node{kind: op.kind, name: name, right: rhs}, nil
		}
	}
	p.pos = mark
	return p.term()
}

var termOps = [...]struct {
	tok  string
	kind nodeKind
}{
	{"+", nodeAdd},
	{"-", nodeSub},
}

// term parses the additive level. The product on the left parses the same
// way for every alternative, so it is parsed once and only the operator and
// right-hand side back out on failure.
func (p *parser) term() (*node, error) {
	if p.depth++; p.depth > maxDepth {
		return nil, &DepthError{Col: p.col()}
	}
	defer func() { p.depth-- }()
	lhs, err := p.product()
	if err != nil || lhs == nil {
		return lhs, err
	}
	mark := p.pos
	for _, op := range termOps {
		if !p.lit(op.tok) {
			p.pos = mark
			continue
		}
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			p.pos = mark
			continue
		}
		return &node{kind: op.kind, left: lhs, right: rhs}, nil
	}
	p.pos = mark
	return lhs, nil
}

var productOps = [...]struct {
	tok  string
	kind nodeKind
}{
	{"*", nodeMul},
	{"/", nodeDiv},
	{"^", nodePow},
	{"&&", nodeAnd},
	{"||", nodeOr},
}

// product parses the multiplicative level, one shared precedence tier for
// *, /, ^, &&, and ||.
func (p *parser) product() (*node, error) {
	if p.depth++; p.depth > maxDepth {
		return nil, &DepthError{Col: p.col()}
	}
	defer func() { p.depth-- }()
	lhs, err := p.factor()
	if err != nil || lhs == nil {
		return lhs, err
	}
	mark := p.pos
	for _, op := range productOps {
		if !p.lit(op.tok) {
			p.pos = mark
			continue
		}
		rhs, err := p.product()
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			p.pos = mark
			continue
		}
		return &node{kind: op.kind, left: lhs, right: rhs}, nil
	}
	p.pos = mark
	return lhs, nil
}

// factor parses a parenthesized term, a variable read, or a number literal,
// in that order. Trying varname before number means spellings like inf and
// nan are variable reads, not literals.
func (p *parser) factor() (*node, error) {
	mark := p.pos
	if p.lit("(") {
		n, err := p.term()
		if err != nil {
			return nil, err
		}
		if n != nil && p.lit(")") {
			return n, nil
		}
		p.pos = mark
	}
	if name, ok := p.varname(); ok {
		p.names[name] = true
		return &node{kind: nodeVar, name: name}, nil
	}
	return p.number(), nil
}

// varname scans an identifier: a letter followed by letters and digits,
// with no interior whitespace.
func (p *parser) varname() (string, bool) {
	p.space()
	start := p.pos
	r, sz := utf8.DecodeRuneInString(p.src[p.pos:])
	if sz == 0 || !unicode.IsLetter(r) {
		return "", false
	}
	p.pos += sz
	for p.pos < len(p.src) {
		r, sz := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos += sz
	}
	return p.src[start:p.pos], true
}

// number scans a floating-point literal: optional sign, digits with an
// optional decimal point on either side, optional e/E exponent. Returns nil
// if no literal starts at the cursor.
func (p *parser) number() *node {
	p.space()
	start := p.pos
	i := p.pos
	if i < len(p.src) && (p.src[i] == '+' || p.src[i] == '-') {
		i++
	}
	dig := false
	for i < len(p.src) && '0' <= p.src[i] && p.src[i] <= '9' {
		i++
		dig = true
	}
	if i < len(p.src) && p.src[i] == '.' {
		i++
		for i < len(p.src) && '0' <= p.src[i] && p.src[i] <= '9' {
			i++
			dig = true
		}
	}
	if !dig {
		return nil
	}
	if i < len(p.src) && (p.src[i] == 'e' || p.src[i] == 'E') {
		j := i + 1
		if j < len(p.src) && (p.src[j] == '+' || p.src[j] == '-') {
			j++
		}
		ed := false
		for j < len(p.src) && '0' <= p.src[j] && p.src[j] <= '9' {
			j++
			ed = true
		}
		// A bare e with no exponent digits belongs to whatever follows.
		if ed {
			i = j
		}
	}
	v, err := strconv.ParseFloat(p.src[start:i], 64)
	if err != nil {
		// Overflow saturates to an infinity rather than failing the match.
		if !errors.Is(err, strconv.ErrRange) {
			return nil
		}
	}
	p.pos = i
	return &node{kind: nodeConst, val: v}
}

// lit matches a literal token at the cursor, skipping leading whitespace.
// The cursor may advance past whitespace even on failure; alternatives
// restore it.
func (p *parser) lit(s string) bool {
	p.space()
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

// space skips whitespace at the cursor.
func (p *parser) space() {
	for p.pos < len(p.src) {
		r, sz := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		p.pos += sz
	}
}

// col converts the cursor to a 1-based rune column.
func (p *parser) col() int {
	return utf8.RuneCountInString(p.src[:p.pos]) + 1
}

// Vars returns the sorted variable names the expression reads or assigns.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a fully parenthesized representation of the parsed
// expression, making the grouping of each operator chain visible.
func (e *Expr) String() string {
	return e.n.String()
}
