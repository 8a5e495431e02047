// Package roster assigns exactly one on-call worker to every day of a
// calendar month, honoring a layered set of hard legal rules (bans, rest
// days, role and certification restrictions, weekend-block limits, pinned
// days) and soft fairness preferences.
//
// Generate is the single entry point. It is pure and deterministic: no
// I/O, no clock, no shared state between calls. Identical requests,
// including the seed, always produce identical results; varying the seed
// is the supported way to ask for an alternative roster of an
// under-constrained month.
package roster

import (
	"fmt"
	"time"
)

// Generate runs the full pipeline for one month: lock validation, a
// strict solver pass (exact targets), a relaxed pass (caps only) and, if
// both fail, the greedy partial-proposal pass. The returned Result always
// discriminates the outcome; the error is reserved for structurally
// malformed requests.
func Generate(req *Request) (*Result, error) {
	eng, err := newEngine(req)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	if conflicts := eng.validateLocks(); len(conflicts) > 0 {
		return &Result{
			Status:    StatusInvalidLocks,
			Seed:      eng.seed,
			Conflicts: conflicts,
		}, nil
	}

	var reasons []string

	// Strict pass. Exact targets are only reachable when the targets sum
	// to the month's length, so a mismatch skips the search outright.
	if eng.targetSum == eng.cal.days {
		st := newRosterState(eng.cal)
		if eng.solve(st, strictRules) {
			return eng.scheduled(StatusScheduled, st), nil
		}
	} else {
		reasons = append(reasons, fmt.Sprintf(
			"sum of targets (%d) does not equal days in month (%d)", eng.targetSum, eng.cal.days))
	}

	// Relaxed pass: targets become soft, caps and every other hard rule
	// stay in force.
	st := newRosterState(eng.cal)
	if eng.solve(st, relaxedRules) {
		return eng.scheduled(StatusScheduledRelaxed, st), nil
	}
	reasons = append(reasons, "no solution found under current caps")

	// Best-effort draft for human arbitration.
	prop := eng.buildProposal()
	if len(prop.Open) == 0 {
		draft := newRosterState(eng.cal)
		for day, id := range prop.Days {
			draft.assigned[day] = id
		}
		return eng.scheduled(StatusScheduledDraft, draft), nil
	}

	return &Result{
		Status:   StatusInfeasible,
		Seed:     eng.seed,
		Reasons:  reasons,
		Proposal: prop,
	}, nil
}

// scheduled packages a complete assignment as a success result.
func (e *engine) scheduled(status Status, st *rosterState) *Result {
	assignments := make(map[int]string, e.cal.days)
	for day := 1; day <= e.cal.days; day++ {
		assignments[day] = st.assigned[day]
	}

	return &Result{
		Status:      status,
		Assignments: assignments,
		Stats:       e.aggregateStats(st.assigned),
		Seed:        e.seed,
	}
}

// DaysInMonth exposes the month length calculation used throughout the
// engine, for callers building requests or rendering results.
func DaysInMonth(year int, month time.Month) int {
	return daysInMonth(year, month)
}
