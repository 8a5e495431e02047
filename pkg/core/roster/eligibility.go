package roster

import "time"

// rulePolicy selects which of the bookkeeping rules a pass enforces. The
// always-on rules (locks, bans, roles, certification, rest, month boundary,
// weekend blocks) are not parameterized: no pass may violate them.
type rulePolicy struct {
	// enforceWant makes the conditional want rule binding.
	enforceWant bool

	// enforceCap bounds each worker at their monthly cap.
	enforceCap bool

	// enforceTarget additionally bounds each worker at their target
	// (strict pass only).
	enforceTarget bool
}

var (
	// strictRules is the first solver pass: exact targets.
	strictRules = rulePolicy{enforceWant: true, enforceCap: true, enforceTarget: true}

	// relaxedRules is the second solver pass: caps only.
	relaxedRules = rulePolicy{enforceWant: true, enforceCap: true}

	// proposalRules is the greedy draft pass. Want is treated as a soft
	// preference here, not a binding claim.
	proposalRules = rulePolicy{enforceCap: true}

	// discussionRules is the last-resort predicate: role, rest,
	// certification and ban rules only. A draft built with it never
	// violates anything a human could not sign off on, but it may
	// overrun caps where nothing better exists.
	discussionRules = rulePolicy{}
)

// eligible reports whether a worker may take a day given the current state
// and policy.
func (e *engine) eligible(st *rosterState, day int, w *worker, pol rulePolicy) bool {
	// A binding want claims the day outright.
	if pol.enforceWant {
		if fw := e.forcedWant(day, st.counts); fw != nil && fw != w {
			return false
		}
	}

	// A locked day belongs to the locked worker in every pass.
	if locked, ok := e.locks[day]; ok && locked != w.id {
		return false
	}

	if w.pref(day) == PrefCannot {
		return false
	}

	// Cross-month rest: whoever closed the prior month sits out day 1.
	if day == 1 && w.id == e.prevLast {
		return false
	}

	if w.role != RoleRegular && e.cal.isWeekend(day) {
		return false
	}

	wd := e.cal.weekday(day)
	if (wd == time.Tuesday || wd == time.Thursday) && !w.certified {
		return false
	}

	if pol.enforceCap && st.counts[w.id]+1 > w.cap {
		return false
	}
	if pol.enforceTarget && st.counts[w.id]+1 > w.target {
		return false
	}

	// Mandatory one-day rest before and after a shift.
	if day > 1 && st.assigned[day-1] == w.id {
		return false
	}
	if day < e.cal.days && st.assigned[day+1] == w.id {
		return false
	}

	return !st.wouldBeThirdBlock(e.cal, day, w)
}

// eligibleWorkers returns every worker eligible for a day, in the engine's
// rank order.
func (e *engine) eligibleWorkers(st *rosterState, day int, pol rulePolicy) []*worker {
	var out []*worker
	for _, w := range e.workers {
		if e.eligible(st, day, w, pol) {
			out = append(out, w)
		}
	}
	return out
}
