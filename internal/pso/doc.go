// Package pso tunes controller gains with particle swarm optimization.
// Candidate evaluation is delegated to an Objective (typically the robust
// cost evaluator) and may run in parallel; all random draws happen on a
// single seeded source between evaluations, so a fixed seed reproduces the
// search bit for bit.
package pso
