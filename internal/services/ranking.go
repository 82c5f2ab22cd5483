package services

import (
	"cmp"
	"slices"
)

// pickFastest returns the first candidate with the smallest cost, or nil
// when there are none. Later candidates only win on a strictly lower cost.
func pickFastest[C any](cands []C, cost func(C) int) *C {
	var best *C
	for i := range cands {
		if best == nil || cost(cands[i]) < cost(*best) {
			best = &cands[i]
		}
	}
	return best
}

// rankByCost returns a copy of cands ordered by ascending cost. Equal-cost
// candidates keep their relative order.
func rankByCost[C any](cands []C, cost func(C) int) []C {
	ranked := slices.Clone(cands)
	if ranked == nil {
		ranked = []C{}
	}
	slices.SortStableFunc(ranked, func(a, b C) int {
		return cmp.Compare(cost(a), cost(b))
	})
	return ranked
}
