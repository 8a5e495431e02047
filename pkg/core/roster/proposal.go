package roster

import "sort"

// buildProposal is the greedy fallback after both solver passes fail: a
// single forward pass over the month with no backtracking. Days the normal
// rules can fill are committed outright; days they cannot are provisionally
// filled by the discussion-safe predicate and flagged, with the full
// candidate pool attached, for human arbitration.
//
// Want is not binding here: a draft meant for discussion should show the
// widest legal options, not enforce claims that already proved unsatisfiable.
func (e *engine) buildProposal() *Proposal {
	st := newRosterState(e.cal)
	prop := &Proposal{Days: make(map[int]string)}

	for day := 1; day <= e.cal.days; day++ {
		if cands := e.eligibleWorkers(st, day, proposalRules); len(cands) > 0 {
			e.orderCandidates(st, day, cands)
			w := cands[0]
			st.apply(e.cal, day, w)
			prop.Days[day] = w.id
			continue
		}

		// Nothing fits within caps; fall back to the discussion-safe
		// predicate so the draft stays maximally filled.
		safe := e.eligibleWorkers(st, day, discussionRules)
		if len(safe) == 0 {
			prop.Open = append(prop.Open, OpenDay{Day: day, Candidates: []string{}})
			continue
		}

		sort.Slice(safe, func(i, j int) bool {
			if safe[i].rank != safe[j].rank {
				return safe[i].rank < safe[j].rank
			}
			return safe[i].id < safe[j].id
		})

		w := safe[0]
		st.apply(e.cal, day, w)
		prop.Days[day] = w.id

		ids := make([]string, len(safe))
		for i, c := range safe {
			ids[i] = c.id
		}
		prop.Open = append(prop.Open, OpenDay{Day: day, Candidates: ids})
	}

	return prop
}
