// Package ddnnf is a reasoner over deterministic Decomposable Negation
// Normal Form (d-DNNF) boolean circuits.
//
// A d-DNNF is a boolean circuit over literals, conjunctions and disjunctions
// such that every conjunction decomposes over disjoint sets of variables and
// every disjunction has mutually exclusive branches. Circuits with these two
// properties, as produced by knowledge compilers such as c2d or d4, support
// queries that are intractable on arbitrary formulas:
//
//   - weighted model counting under partial assignments,
//   - extraction of one model consistent with a partial assignment,
//   - in-place conditioning of the circuit by a partial assignment.
//
// A circuit is loaded from its standard textual representation:
//
//	g, err := ddnnf.ParseNNF(f)
//
// and then queried:
//
//	mc := g.ModelCount(nil)                 // number of models
//	m := g.ValidModel(nil)                  // one of them, or nil
//
// Queries take a partial model, a binding of some variables to true or
// false. The circuit is not assumed to be smooth: disjunction branches may
// mention strict subsets of their siblings' variables, and the counting
// engine compensates at query time.
//
// The package trusts its input: it does not check that a parsed circuit is
// actually decomposable and deterministic. Feeding it a circuit without
// these properties yields meaningless answers, not errors.
//
// All operations are single-threaded. A Graph must not be queried while
// ConditionTo or SetWeights is running.
package ddnnf
