package roster

// solve runs one full backtracking pass over the month under the given
// policy. On success the state holds a complete assignment; on failure the
// state is restored to empty.
func (e *engine) solve(st *rosterState, pol rulePolicy) bool {
	unassigned := make([]int, 0, e.cal.days)
	for day := 1; day <= e.cal.days; day++ {
		unassigned = append(unassigned, day)
	}
	return e.search(st, unassigned, pol)
}

// search is the recursive step: global forward check, most-constrained-day
// selection, then candidates in scorer order with exact apply/undo.
func (e *engine) search(st *rosterState, unassigned []int, pol rulePolicy) bool {
	if pol.enforceTarget && !e.strictViable(st, len(unassigned)) {
		return false
	}

	if len(unassigned) == 0 {
		if pol.enforceTarget {
			return e.targetsMet(st)
		}
		return true
	}

	// Forward check every open day; prune the branch as soon as any day
	// has no legal candidate. Branch on the day with the fewest, ties
	// broken by day order.
	bestIdx := -1
	var bestCands []*worker
	for i, day := range unassigned {
		cands := e.eligibleWorkers(st, day, pol)
		if len(cands) == 0 {
			return false
		}
		if bestIdx == -1 || len(cands) < len(bestCands) {
			bestIdx, bestCands = i, cands
		}
	}

	day := unassigned[bestIdx]
	rest := make([]int, 0, len(unassigned)-1)
	rest = append(rest, unassigned[:bestIdx]...)
	rest = append(rest, unassigned[bestIdx+1:]...)

	e.orderCandidates(st, day, bestCands)

	for _, w := range bestCands {
		st.apply(e.cal, day, w)
		if e.search(st, rest, pol) {
			return true
		}
		st.undo(e.cal, day, w)
	}

	return false
}

// strictViable prunes strict-mode branches that can no longer reach exact
// targets: the remaining per-worker shortfalls must fit in the remaining
// days, and nobody may already be over target.
func (e *engine) strictViable(st *rosterState, remaining int) bool {
	shortfall := 0
	for _, w := range e.workers {
		count := st.counts[w.id]
		if count > w.target {
			return false
		}
		shortfall += w.target - count
	}
	return shortfall <= remaining
}

// targetsMet reports whether every worker's count equals their target
// exactly, the strict-mode success condition.
func (e *engine) targetsMet(st *rosterState) bool {
	for _, w := range e.workers {
		if st.counts[w.id] != w.target {
			return false
		}
	}
	return true
}
