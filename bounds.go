package qubogen

import "github.com/katalvlaran/qubogen/pbf"

// interval bounds a source-side polynomial over the declared variable
// domains with interval arithmetic: each term's range is the product of
// its variables' ranges, scaled by the coefficient; ranges sum across
// terms. The bound is conservative (correlations between terms ignored):
// slack sizing needs an interval covering every attainable residual, not
// a tight one.
func interval(f pbf.PBF, vars map[int]SourceVariable) (lo, hi float64) {
	for _, t := range f.Terms() {
		c := f.Coefficient(t)
		tLo, tHi := 1.0, 1.0
		for _, v := range t.Vars() {
			sv := vars[v]
			vLo, vHi := sv.Lo, sv.Hi
			if sv.Domain == DomainBinary {
				vLo, vHi = 0, 1
			}
			tLo, tHi = mulInterval(tLo, tHi, vLo, vHi)
		}
		termLo, termHi := c*tLo, c*tHi
		if termLo > termHi {
			termLo, termHi = termHi, termLo
		}
		lo += termLo
		hi += termHi
	}

	return lo, hi
}

// mulInterval multiplies [aLo, aHi] by [bLo, bHi].
func mulInterval(aLo, aHi, bLo, bHi float64) (float64, float64) {
	products := [4]float64{aLo * bLo, aLo * bHi, aHi * bLo, aHi * bHi}
	lo, hi := products[0], products[0]
	for _, p := range products[1:] {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}

	return lo, hi
}
