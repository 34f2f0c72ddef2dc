// Package repl implements the interactive command loop of the reasoner.
//
// A session holds at most one loaded graph and its weights. Commands are
// read line by line, queries print their result on the session's output,
// and diagnostics go through logrus so they never mix with query results.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/crillab/godnnf/ddnnf"
	"github.com/crillab/godnnf/objective"
)

// A Session is the state of one command loop: the loaded graph, if any, and
// the output query results are printed on.
type Session struct {
	graph *ddnnf.Graph
	out   io.Writer
}

// New returns a session with no graph loaded, printing results on out.
func New(out io.Writer) *Session {
	return &Session{out: out}
}

// Run reads commands from in and executes them until the "q" command or
// end of input.
func Run(in io.Reader, out io.Writer) error {
	s := New(out)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("could not read command: %v", err)
			}
			return nil
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "q" {
			return nil
		}
		s.Execute(fields[0], fields[1:])
	}
}

// Execute runs a single command. Unknown commands and command misuses are
// reported and ignored.
func (s *Session) Execute(cmd string, args []string) {
	switch cmd {
	case "mc":
		s.printModelCount(args)
	case "model":
		s.printModel(args)
	case "cond":
		s.condition(args)
	case "nodes":
		if g := s.requireGraph(); g != nil {
			fmt.Fprintln(s.out, g.NbNodes())
		}
	case "vars":
		if g := s.requireGraph(); g != nil {
			fmt.Fprintln(s.out, g.NbVars)
		}
	case "load":
		s.load(args)
	case "w":
		s.loadWeights(args)
	case "p":
		if g := s.requireGraph(); g != nil {
			if err := g.WriteNNF(s.out); err != nil {
				logrus.Errorf("could not print graph: %v", err)
			}
		}
	case "store":
		s.store(args)
	case "min":
		s.minimize(args, false)
	case "mintr":
		s.minimize(args, true)
	case "h", "help":
		s.printHelp()
	default:
		logrus.Errorf("invalid command %q", cmd)
	}
}

// requireGraph returns the loaded graph, reporting an error if there is
// none.
func (s *Session) requireGraph() *ddnnf.Graph {
	if s.graph == nil {
		logrus.Error("load a graph first")
	}
	return s.graph
}

// parsePartialModel reads a partial model from command arguments: a list of
// literals, ended by an optional 0.
func parsePartialModel(nbVars int, args []string) (ddnnf.Model, error) {
	m := ddnnf.NewModel(nbVars)
	for _, arg := range args {
		lit, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("literal not an int: %q", arg)
		}
		if lit == 0 {
			break
		}
		v := lit
		if v < 0 {
			v = -v
		}
		if v > nbVars {
			return nil, fmt.Errorf("invalid literal %d for graph with %d vars only", lit, nbVars)
		}
		if lit > 0 {
			m.SetBindingFor(v, ddnnf.True)
		} else {
			m.SetBindingFor(v, ddnnf.False)
		}
	}
	return m, nil
}

// formatCount renders an exact count: as an integer when it is one, in
// decimal notation otherwise, so weighted counts do not show up as
// fractions.
func formatCount(mc *big.Rat) string {
	if mc.IsInt() {
		return mc.Num().String()
	}
	str := mc.FloatString(10)
	str = strings.TrimRight(str, "0")
	return strings.TrimSuffix(str, ".")
}

func (s *Session) printModelCount(args []string) {
	g := s.requireGraph()
	if g == nil {
		return
	}
	m, err := parsePartialModel(g.NbVars, args)
	if err != nil {
		logrus.Errorf("invalid argument: %v", err)
		return
	}
	fmt.Fprintln(s.out, formatCount(g.ModelCount(m)))
}

func (s *Session) printModel(args []string) {
	g := s.requireGraph()
	if g == nil {
		return
	}
	m, err := parsePartialModel(g.NbVars, args)
	if err != nil {
		logrus.Errorf("invalid argument: %v", err)
		return
	}
	if res := g.ValidModel(m); res == nil {
		fmt.Fprintln(s.out, "UNSAT")
	} else {
		fmt.Fprintln(s.out, ddnnf.Compact(res))
	}
}

func (s *Session) condition(args []string) {
	g := s.requireGraph()
	if g == nil {
		return
	}
	m, err := parsePartialModel(g.NbVars, args)
	if err != nil {
		logrus.Errorf("invalid argument: %v", err)
		return
	}
	g.ConditionTo(m)
}

func (s *Session) load(args []string) {
	if len(args) != 1 {
		logrus.Error("invalid call: load filename")
		return
	}
	f, err := os.Open(args[0])
	if err != nil {
		logrus.Errorf("could not open %q: %v", args[0], err)
		return
	}
	defer f.Close()
	g, err := ddnnf.ParseNNF(f)
	if err != nil {
		logrus.Errorf("could not parse %q: %v", args[0], err)
		return
	}
	s.graph = g
	logrus.Infof("loaded graph with %d vars and %d nodes", g.NbVars, g.NbNodes())
}

func (s *Session) loadWeights(args []string) {
	g := s.requireGraph()
	if g == nil {
		return
	}
	if len(args) != 1 {
		logrus.Error("invalid call: w filename")
		return
	}
	f, err := os.Open(args[0])
	if err != nil {
		logrus.Errorf("could not open %q: %v", args[0], err)
		return
	}
	defer f.Close()
	w, err := ddnnf.ParseWeights(f, g.NbVars)
	if err != nil {
		logrus.Errorf("could not parse %q: %v", args[0], err)
		return
	}
	g.SetWeights(w)
}

func (s *Session) store(args []string) {
	g := s.requireGraph()
	if g == nil {
		return
	}
	if len(args) != 1 {
		logrus.Error("invalid call: store filename")
		return
	}
	f, err := os.Create(args[0])
	if err != nil {
		logrus.Errorf("could not create %q: %v", args[0], err)
		return
	}
	defer f.Close()
	if err := g.WriteNNF(f); err != nil {
		logrus.Errorf("could not store graph: %v", err)
	}
}

// minimize loads an objective function and minimizes it under the graph.
// When trim is set, the graph is then replaced by its
// KeepBoundedWeightModels rewrite at the minimal value.
func (s *Session) minimize(args []string, trim bool) {
	g := s.requireGraph()
	if g == nil {
		return
	}
	if len(args) != 1 {
		logrus.Error("invalid call: min/mintr filename")
		return
	}
	f, err := os.Open(args[0])
	if err != nil {
		logrus.Errorf("could not open %q: %v", args[0], err)
		return
	}
	defer f.Close()
	obj, err := objective.Parse(f, g.NbVars)
	if err != nil {
		logrus.Errorf("could not parse %q: %v", args[0], err)
		return
	}
	value, model := obj.Optimize(g)
	if model == nil {
		fmt.Fprintln(s.out, "UNSAT")
		return
	}
	fmt.Fprintln(s.out, "o", value)
	if trim {
		logrus.Info("conditioning phase begins")
		s.graph = obj.KeepBoundedWeightModels(g, value)
	} else {
		fmt.Fprintln(s.out, ddnnf.Compact(model))
	}
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, "cond [partial model] - conditions the graph according to partial model")
	fmt.Fprintln(s.out, "h - displays current help")
	fmt.Fprintln(s.out, "help - displays current help")
	fmt.Fprintln(s.out, "load filename - loads a graph from file")
	fmt.Fprintln(s.out, "mc [partial model] - count models")
	fmt.Fprintln(s.out, "min filename - minimize objective function in file under the graph")
	fmt.Fprintln(s.out, "mintr filename - keep models that minimize objective function in file only")
	fmt.Fprintln(s.out, "model [partial model] - display a valid model, if any")
	fmt.Fprintln(s.out, "nodes - display number of nodes")
	fmt.Fprintln(s.out, "p - prints graph on standard output in d-DNNF format")
	fmt.Fprintln(s.out, "q - quits program")
	fmt.Fprintln(s.out, "store filename - saves graph in d-DNNF format in filename")
	fmt.Fprintln(s.out, "vars - display number of vars")
	fmt.Fprintln(s.out, "w filename - loads weights from file")
}
