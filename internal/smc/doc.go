// Package smc implements sliding-mode controllers for the double inverted
// pendulum: a classical boundary-layer design, an adaptive-gain variant, a
// super-twisting second-order design, and a model-free hybrid that combines
// adaptation with super-twisting output. Controllers are built through an
// immutable Registry keyed by a closed Type enum, so the set of variants is
// fixed at compile time.
//
// The classical, adaptive and super-twisting variants use an injected
// dynamics model to compute the equivalent control along the sliding
// surface; the model is only read, never mutated, and may be shared across
// controller instances.
package smc
