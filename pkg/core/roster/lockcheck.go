package roster

import (
	"fmt"
	"sort"
	"time"
)

// ValidateLocks runs request normalization and the static lock validation
// only, with no search. Useful for pre-flight checking a hand-pinned month.
func ValidateLocks(req *Request) ([]LockConflict, error) {
	eng, err := newEngine(req)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	return eng.validateLocks(), nil
}

// validateLocks statically checks every pinned assignment before any
// search. It accumulates every violation rather than failing fast, so the
// whole lock map can be fixed in one round.
func (e *engine) validateLocks() []LockConflict {
	var conflicts []LockConflict

	days := make([]int, 0, len(e.locks))
	for day := range e.locks {
		days = append(days, day)
	}
	sort.Ints(days)

	// Running bookkeeping across the walk: counts and weekend blocks of
	// locked days seen so far.
	st := newRosterState(e.cal)

	for _, day := range days {
		w := e.byID[e.locks[day]]

		if fw := e.forcedWant(day, st.counts); fw != nil && fw != w {
			conflicts = append(conflicts, LockConflict{
				Day:      day,
				WorkerID: w.id,
				Rule:     RuleForcedWant,
				Description: fmt.Sprintf("day %d is locked to %s but %s wants the day and is below target",
					day, w.name, fw.name),
			})
		}

		if w.pref(day) == PrefCannot {
			conflicts = append(conflicts, LockConflict{
				Day:      day,
				WorkerID: w.id,
				Rule:     RuleCannot,
				Description: fmt.Sprintf("day %d is locked to %s who cannot serve that day",
					day, w.name),
			})
		}

		if w.role != RoleRegular && e.cal.isWeekend(day) {
			conflicts = append(conflicts, LockConflict{
				Day:      day,
				WorkerID: w.id,
				Rule:     RuleLeadWeekend,
				Description: fmt.Sprintf("day %d (%s) is locked to %s, but the %s role never serves weekends",
					day, e.cal.weekday(day), w.name, w.role),
			})
		}

		if wd := e.cal.weekday(day); (wd == time.Tuesday || wd == time.Thursday) && !w.certified {
			conflicts = append(conflicts, LockConflict{
				Day:      day,
				WorkerID: w.id,
				Rule:     RuleCertification,
				Description: fmt.Sprintf("day %d (%s) is locked to %s, who is not certified for Tuesday/Thursday duty",
					day, wd, w.name),
			})
		}

		if day == 1 && w.id == e.prevLast {
			conflicts = append(conflicts, LockConflict{
				Day:      day,
				WorkerID: w.id,
				Rule:     RuleMonthBoundary,
				Description: fmt.Sprintf("day 1 is locked to %s, who served the last day of the previous month",
					w.name),
			})
		}

		if prev, ok := e.locks[day-1]; ok && prev == w.id {
			conflicts = append(conflicts, LockConflict{
				Day:      day,
				WorkerID: w.id,
				Rule:     RuleConsecutive,
				Description: fmt.Sprintf("%s is locked on both day %d and day %d with no rest day between",
					w.name, day-1, day),
			})
		}

		st.apply(e.cal, day, w)
	}

	// Aggregate checks across the whole lock map, per worker in rank order.
	for _, w := range e.workers {
		if st.counts[w.id] > w.cap {
			conflicts = append(conflicts, LockConflict{
				WorkerID: w.id,
				Rule:     RuleCapExceeded,
				Description: fmt.Sprintf("%s is locked on %d days but capped at %d shifts per month",
					w.name, st.counts[w.id], w.cap),
			})
		}
		if st.blocksTouched[w.id] > maxWeekendBlocks {
			conflicts = append(conflicts, LockConflict{
				WorkerID: w.id,
				Rule:     RuleWeekendBlocks,
				Description: fmt.Sprintf("%s is locked into %d distinct weekend blocks (max %d)",
					w.name, st.blocksTouched[w.id], maxWeekendBlocks),
			})
		}
	}

	return conflicts
}
