package arith

import "math"

// Env is a variable environment for evaluating expressions. The zero value
// is not usable; create one with NewEnv. An Env persists across lines and
// is mutated only by assignment expressions. It is not safe to use an Env
// concurrently.
type Env struct {
	vars map[string]float64
}

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption(*Env)
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
)

func (o varopt) envOption(e *Env) {
	e.vars[o.name] = o.val
}

func (o varsopt) envOption(e *Env) {
	for k, v := range o {
		e.vars[k] = v
	}
}

// SetVar sets the value of a variable in the environment.
func SetVar(name string, val float64) EnvOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the environment.
func SetVars(vars map[string]float64) EnvOption {
	return varsopt(vars)
}

// NewEnv creates a new variable environment.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{vars: make(map[string]float64)}
	for _, opt := range opts {
		opt.envOption(e)
	}
	return e
}

// Get returns the value of a variable. Names that have never been assigned
// read as 0.
func (e *Env) Get(name string) float64 {
	return e.vars[name]
}

// Set assigns a variable, inserting it if absent.
func (e *Env) Set(name string, val float64) {
	e.vars[name] = val
}

// Clone creates a copy of the environment with the same variable values,
// applying options to the copy.
func (e *Env) Clone(opts ...EnvOption) *Env {
	n := &Env{vars: make(map[string]float64, len(e.vars))}
	for k, v := range e.vars {
		n.vars[k] = v
	}
	for _, opt := range opts {
		opt.envOption(n)
	}
	return n
}

// Eval evaluates the expression against env and returns the result.
// Evaluating an assignment stores into env and returns the stored value;
// any other expression leaves env untouched. Numeric anomalies such as
// division by zero propagate as IEEE infinities and NaN.
func (e *Expr) Eval(env *Env) float64 {
	return e.n.eval(env)
}

// EvalString is a shortcut to parse one line and evaluate it against env.
func EvalString(src string, env *Env) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(env), nil
}

func (n *node) eval(env *Env) float64 {
	switch n.kind {
	case nodeConst:
		return n.val
	case nodeVar:
		return env.Get(n.name)
	case nodeAdd:
		return n.left.eval(env) + n.right.eval(env)
	case nodeSub:
		return n.left.eval(env) - n.right.eval(env)
	case nodeMul:
		return n.left.eval(env) * n.right.eval(env)
	case nodeDiv:
		return n.left.eval(env) / n.right.eval(env)
	case nodePow:
		return math.Pow(n.left.eval(env), n.right.eval(env))
	case nodeAnd:
		// Both operands always evaluate; nonzero is true.
		l, r := n.left.eval(env), n.right.eval(env)
		if l != 0 && r != 0 {
			return 1
		}
		return 0
	case nodeOr:
		l, r := n.left.eval(env), n.right.eval(env)
		if l != 0 || r != 0 {
			return 1
		}
		return 0
	case nodeAssign:
		v := n.right.eval(env)
		env.Set(n.name, v)
		return v
	case nodeAddAssign:
		v := env.Get(n.name) + n.right.eval(env)
		env.Set(n.name, v)
		return v
	case nodeSubAssign:
		v := env.Get(n.name) - n.right.eval(env)
		env.Set(n.name, v)
		return v
	case nodeMulAssign:
		v := env.Get(n.name) * n.right.eval(env)
		env.Set(n.name, v)
		return v
	case nodeDivAssign:
		v := env.Get(n.name) / n.right.eval(env)
		env.Set(n.name, v)
		return v
	default:
		panic("arith: invalid AST node " + n.kind.String())
	}
}
