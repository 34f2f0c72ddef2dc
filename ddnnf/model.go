package ddnnf

import (
	"strconv"
	"strings"
)

// A Binding is the value given to a boolean variable in a model.
type Binding byte

const (
	// False means the variable is bound to false.
	False = Binding(iota)
	// True means the variable is bound to true.
	True
	// Free means the variable is not bound yet.
	Free
	// Unsat means the variable was asserted both true and false: the model
	// carries a local contradiction. It is a value, not an error.
	Unsat
)

func (b Binding) String() string {
	switch b {
	case False:
		return "false"
	case True:
		return "true"
	case Free:
		return "free"
	case Unsat:
		return "unsat"
	default:
		panic("invalid binding")
	}
}

// polarity returns the binding asserted by lit: True for a positive literal,
// False for a negative one.
func polarity(lit int) Binding {
	if lit > 0 {
		return True
	}
	return False
}

// contradicts is true iff a variable bound to b cannot satisfy lit.
func contradicts(b Binding, lit int) bool {
	return b == Unsat || b == polarity(-lit)
}

// A Model binds each variable of a problem to a value.
// It can be partial, i.e have Free variables.
// Variables are numbered from 1 to NbVars.
type Model []Binding

// NewModel returns a model of nbVars variables, all Free.
func NewModel(nbVars int) Model {
	m := make(Model, nbVars)
	for i := range m {
		m[i] = Free
	}
	return m
}

// NbVars returns the number of variables of the model.
func (m Model) NbVars() int {
	return len(m)
}

// BindingFor returns the binding of the given variable.
func (m Model) BindingFor(v int) Binding {
	return m[v-1]
}

// SetBindingFor binds the given variable.
// Binding to True a variable already bound to False, or the other way
// around, makes the variable Unsat.
func (m Model) SetBindingFor(v int, b Binding) {
	old := m[v-1]
	if (old == True && b == False) || (old == False && b == True) {
		m[v-1] = Unsat
	} else {
		m[v-1] = b
	}
}

// Clone returns an independent copy of m.
func (m Model) Clone() Model {
	m2 := make(Model, len(m))
	copy(m2, m)
	return m2
}

// HasFreeVars is true iff the model has at least one Free variable.
func (m Model) HasFreeVars() bool {
	for _, b := range m {
		if b == Free {
			return true
		}
	}
	return false
}

// FirstFreeVar returns the smallest-numbered Free variable of the model,
// or -1 if all variables are bound.
func (m Model) FirstFreeVar() int {
	for i, b := range m {
		if b == Free {
			return i + 1
		}
	}
	return -1
}

// Mix combines the bindings from m1 and m2, pointwise, into mOut.
// A Free variable takes the other model's binding; two equal bindings are
// kept. If any variable is True in one model and False in the other, the
// models are incompatible: Mix returns false and mOut is left in an
// unspecified state. The same slice can be used for m1, m2 and/or mOut.
func Mix(m1, m2, mOut Model) bool {
	for i := range m1 {
		b1, b2 := m1[i], m2[i]
		switch {
		case b1 == Free:
			mOut[i] = b2
		case b2 == Free || b1 == b2:
			mOut[i] = b1
		default:
			return false
		}
	}
	return true
}

// Expanded returns all the models that conform to m but have no free vars.
// It returns 2**n models, where n is the number of Free variables of m, so
// it must only be called on models with a very limited number of free vars.
func (m Model) Expanded() []CompactModel {
	var res []CompactModel
	models := []Model{m.Clone()}
	i := 0
	for i < len(models) {
		cur := models[i]
		fVar := cur.FirstFreeVar()
		if fVar == -1 {
			res = append(res, Compact(cur))
			i++
		} else {
			toFalse := cur.Clone()
			cur.SetBindingFor(fVar, True)
			toFalse.SetBindingFor(fVar, False)
			models = append(models, toFalse)
		}
	}
	return res
}

// String renders the bound variables of m as signed integers, e.g "Model{1, -3}".
func (m Model) String() string {
	var sb strings.Builder
	sb.WriteString("Model{")
	first := true
	for i, b := range m {
		if b == Free {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		if b == False {
			sb.WriteByte('-')
		}
		sb.WriteString(strconv.Itoa(i + 1))
	}
	sb.WriteByte('}')
	return sb.String()
}

// A CompactModel is a total model: it only holds bound variables, making it
// much more compact than a regular Model.
type CompactModel []bool

// Compact returns the CompactModel associated with m.
// Variables of m that are not bound to True, including Free ones, are bound
// to false.
func Compact(m Model) CompactModel {
	cm := make(CompactModel, len(m))
	for i, b := range m {
		cm[i] = b == True
	}
	return cm
}

// BindingFor returns the binding of the given variable.
func (cm CompactModel) BindingFor(v int) Binding {
	if cm[v-1] {
		return True
	}
	return False
}

// String renders cm as a DIMACS-style list of literals, ended by a 0.
func (cm CompactModel) String() string {
	var sb strings.Builder
	for i, pos := range cm {
		lit := i + 1
		if !pos {
			lit = -lit
		}
		sb.WriteString(strconv.Itoa(lit))
		sb.WriteByte(' ')
	}
	sb.WriteByte('0')
	return sb.String()
}
