// Package qubo defines the QUBO normal form exported to target models.
//
// 🚀 What is QUBO normal form?
//
//	A Quadratic Unconstrained Binary Optimization problem is an energy
//	function over n binary variables:
//
//	    E(x) = Scale·( Σᵢ Linear[i]·xᵢ + Σ_{i<j} Quad[{i,j}]·xᵢ·xⱼ ) + Offset
//
//	Quadratic terms are keyed by canonical pairs with I < J, so every
//	interaction appears exactly once (mirroring the upper-triangular
//	convention of annealer APIs).
//
// ✨ Surfaces:
//   - FromPBF    — converts a degree ≤ 2 polynomial into normal form
//   - Energy     — evaluates the form at a 0/1 assignment
//   - Dense      — exports a symmetric gonum matrix (off-diagonal halved)
//   - Normalize  — rescales coefficients into [−1, 1], folding the factor
//     into Scale
//   - Round      — rounds coefficients, dropping vanishing entries
package qubo
