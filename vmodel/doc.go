// Package vmodel binds source-model variables (and constraint slacks) to
// their binary encodings and assembles the total energy polynomial.
//
// 🚀 What is a virtual model?
//
//	QUBO compilation replaces every source variable by an expansion ξ over
//	fresh binary target variables.  The virtual model is the bookkeeping
//	around that replacement:
//	  • one VirtualVariable per source variable or constraint slack,
//	  • a source-id → VirtualVariable map,
//	  • a target-id → VirtualVariable map forming a strict partition:
//	    every target id belongs to exactly one VirtualVariable,
//	  • substitution of source polynomials through the expansions,
//	  • total-energy assembly ℍ = ℍ₀ + Σ ρᵢ·ℍᵢ + Σ θ·χ.
//
// ✨ Guarantees:
//   - at most one VirtualVariable per source id: re-encoding an already
//     encoded id fails with ErrDuplicateEncoding, never a silent overwrite
//   - the target-id partition holds at all times; a colliding allocation
//     fails with ErrDuplicateEncoding before any registration
//   - creation order is preserved, so decoding iterates deterministically
//
// ⚙️ Usage:
//
//	m := vmodel.New()
//	vv, err := m.Encode(tgt, 0, encoding.Binary{}, encoding.Spec{Lo: 0, Hi: 7, Tol: 1})
//	h0, err := m.Substitute(objective)            // source PBF → target PBF
//	h := m.Assemble(h0, constraints)              // total energy
//	values, err := m.Decode(assignment)           // target bits → source values
//
// Concurrency: a Model is mutable state with a single logical writer (the
// compilation call). It is not safe for concurrent mutation.
package vmodel
