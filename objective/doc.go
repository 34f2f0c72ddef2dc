// Package objective minimizes linear objective functions over the models of
// a d-DNNF circuit.
//
// A linear objective function associates an integer weight with each
// literal. The value of a total model is the sum, over all variables, of
// the weight of the literal the model chooses. Given a circuit from the
// ddnnf package, the package answers two questions:
//
//   - what is the smallest value the function takes on a model of the
//     circuit, and on which model (Optimize),
//   - what does the circuit become once the subgraphs whose lower bound
//     exceeds a given bound are pruned away (KeepBoundedWeightModels); this
//     pruning is not an exact filter of the models by value.
//
// Both run in one traversal of the circuit, without enumerating models:
// decomposability makes per-subgraph lower bounds sum up, and determinism
// makes it safe to collapse a decision node onto its cheaper branch.
//
// Objective weights are plain ints; counting weights stay exact rationals
// in the ddnnf package. The two never mix.
package objective
