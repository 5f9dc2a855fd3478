package pbf

import (
	"sort"
	"strconv"
	"strings"
)

// Term is an immutable product of distinct boolean variables, identified by
// their integer ids. The zero Term is the empty term — the constant monomial.
//
// Variable order is irrelevant to identity: NewTerm(2, 1) == NewTerm(1, 2).
// Internally ids are kept sorted ascending and deduplicated, so Degree and
// comparison are well defined.
type Term struct {
	vars []int
	key  string
}

// NewTerm builds a Term from the given variable ids.
// Duplicates collapse (x·x = x on 0/1 variables); order does not matter.
//
// Complexity: O(k log k) for k ids.
func NewTerm(vars ...int) Term {
	if len(vars) == 0 {
		return Term{}
	}
	vs := make([]int, len(vars))
	copy(vs, vars)
	sort.Ints(vs)

	// Deduplicate in place: idempotence of boolean variables.
	w := 0
	for i, v := range vs {
		if i == 0 || v != vs[w-1] {
			vs[w] = v
			w++
		}
	}
	vs = vs[:w]

	return Term{vars: vs, key: termKey(vs)}
}

// termKey renders sorted ids into a canonical map key.
func termKey(vs []int) string {
	if len(vs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}

// Vars returns a copy of the term's variable ids, sorted ascending.
func (t Term) Vars() []int {
	if len(t.vars) == 0 {
		return nil
	}
	vs := make([]int, len(t.vars))
	copy(vs, t.vars)

	return vs
}

// Degree reports the number of variables in the term (0 for the constant).
func (t Term) Degree() int { return len(t.vars) }

// IsConstant reports whether t is the empty (constant) term.
func (t Term) IsConstant() bool { return len(t.vars) == 0 }

// Contains reports whether variable v appears in the term.
//
// Complexity: O(log k) via binary search over the sorted ids.
func (t Term) Contains(v int) bool {
	i := sort.SearchInts(t.vars, v)

	return i < len(t.vars) && t.vars[i] == v
}

// Union returns the term whose variable set is the union of t and u.
// This is exactly the monomial product on 0/1 variables.
//
// Complexity: O(k₁ + k₂) merge of two sorted id lists.
func (t Term) Union(u Term) Term {
	if len(t.vars) == 0 {
		return u
	}
	if len(u.vars) == 0 {
		return t
	}
	merged := make([]int, 0, len(t.vars)+len(u.vars))
	i, j := 0, 0
	for i < len(t.vars) && j < len(u.vars) {
		switch {
		case t.vars[i] < u.vars[j]:
			merged = append(merged, t.vars[i])
			i++
		case t.vars[i] > u.vars[j]:
			merged = append(merged, u.vars[j])
			j++
		default:
			merged = append(merged, t.vars[i])
			i++
			j++
		}
	}
	merged = append(merged, t.vars[i:]...)
	merged = append(merged, u.vars[j:]...)

	return Term{vars: merged, key: termKey(merged)}
}

// Compare orders terms canonically: by degree first, then lexicographically
// over the sorted variable ids. Returns -1, 0 or +1.
//
// This ordering is the determinism anchor for Terms(), String() and the
// stable quadratization mode.
func (t Term) Compare(u Term) int {
	if d := len(t.vars) - len(u.vars); d != 0 {
		if d < 0 {
			return -1
		}

		return 1
	}
	for i := range t.vars {
		if t.vars[i] != u.vars[i] {
			if t.vars[i] < u.vars[i] {
				return -1
			}

			return 1
		}
	}

	return 0
}

// Equal reports whether both terms contain the same variable set.
func (t Term) Equal(u Term) bool { return t.key == u.key }

// String renders the term as "1" for the constant or "x2·x5" otherwise.
func (t Term) String() string {
	if len(t.vars) == 0 {
		return "1"
	}
	var b strings.Builder
	for i, v := range t.vars {
		if i > 0 {
			b.WriteString("·")
		}
		b.WriteByte('x')
		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}
