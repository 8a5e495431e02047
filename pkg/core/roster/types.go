package roster

import "time"

// Role classifies a worker for the leadership weekend rules.
type Role string

const (
	// RoleRegular workers take normal on-call duty with a configurable cap.
	RoleRegular Role = "regular"

	// RoleLeadPrimary is the practice lead. Capped at one shift per month
	// and never assigned Friday, Saturday or Sunday.
	RoleLeadPrimary Role = "lead-primary"

	// RoleLeadDeputy is the deputy lead. Capped at two shifts per month
	// and never assigned Friday, Saturday or Sunday.
	RoleLeadDeputy Role = "lead-deputy"
)

// Preference is a worker's stance on serving a particular day.
type Preference int

const (
	// PrefNone is the default for any (worker, day) pair not mentioned
	// in the request.
	PrefNone Preference = iota

	// PrefCannot is an absolute ban - the worker is never assigned that day.
	PrefCannot

	// PrefAvoid is a soft penalty - assigned only when better options run out.
	PrefAvoid

	// PrefWant is a conditional hard priority: binding while the worker is
	// below their monthly target, a soft preference afterwards.
	PrefWant
)

// WorkerSpec describes one worker in a schedule request.
type WorkerSpec struct {
	// ID uniquely identifies the worker within the request.
	ID string

	// Name is the display name used in stats and conflict messages.
	Name string

	// Rank is the worker's priority rank; lower is higher priority.
	// Ranks order tie-breaks and decide Tuesday/Thursday certification.
	Rank int

	// Role determines the shift cap and the weekend restriction.
	Role Role

	// Cap is the configured maximum shifts per month for regular workers.
	// Nil means the default of 5. Ignored for lead roles, whose caps are
	// fixed at 1 (primary) and 2 (deputy).
	Cap *int

	// Target is the number of shifts the worker should ideally serve.
	Target int

	// ClinicDays are the worker's fixed weekly ambulance/clinic weekdays.
	// Days immediately preceding a clinic day are soft-penalized.
	ClinicDays []time.Weekday

	// Prefs maps day-of-month to the worker's preference for that day.
	Prefs map[int]Preference
}

// Request is the input to Generate: one month's roster problem.
type Request struct {
	Year  int
	Month time.Month

	// Workers on the roster, at most ten.
	Workers []WorkerSpec

	// Locks pins specific days to specific worker IDs. A lock is a hard
	// requirement that must be jointly feasible with every other rule.
	Locks map[int]string

	// PreviousLastWorker is the ID of whoever served the final day of the
	// prior month, if known. That worker is barred from day 1.
	PreviousLastWorker string

	// Seed drives the tie-break jitter. Identical requests with identical
	// seeds produce identical results; varying the seed is the supported
	// way to ask for an alternative roster.
	Seed string
}

// Status discriminates the outcome of a Generate call.
type Status string

const (
	// StatusScheduled means the strict pass succeeded: every day filled and
	// every worker's shift count exactly equals their target.
	StatusScheduled Status = "scheduled"

	// StatusScheduledRelaxed means targets could not all be met exactly, but
	// a full roster exists within caps and all other hard rules.
	StatusScheduledRelaxed Status = "scheduled-relaxed"

	// StatusScheduledDraft means both solver passes failed but the greedy
	// proposal pass still managed to fill every day legally.
	StatusScheduledDraft Status = "scheduled-draft"

	// StatusInvalidLocks means the pinned assignments are inconsistent with
	// the hard rules. No search was attempted; Conflicts lists every issue.
	StatusInvalidLocks Status = "invalid-locks"

	// StatusInfeasible means no full roster could be found. Proposal carries
	// the best-effort draft and the days needing human arbitration.
	StatusInfeasible Status = "infeasible"
)

// LockConflict describes one statically detected problem with the lock map.
type LockConflict struct {
	// Day is the day-of-month the conflict occurs on, 0 for per-worker
	// aggregate conflicts (cap or weekend-block overruns).
	Day int

	// WorkerID is the worker involved.
	WorkerID string

	// Rule names the violated rule.
	Rule string

	// Description is the human-readable explanation.
	Description string
}

// Lock conflict rule names.
const (
	RuleForcedWant    = "forced-want"
	RuleCannot        = "cannot-preference"
	RuleLeadWeekend   = "lead-weekend"
	RuleCertification = "certification"
	RuleMonthBoundary = "month-boundary"
	RuleConsecutive   = "consecutive-days"
	RuleCapExceeded   = "cap-exceeded"
	RuleWeekendBlocks = "weekend-blocks"
)

// OpenDay is a day the proposal builder could not settle within the normal
// rules, together with every worker who could plausibly take it.
type OpenDay struct {
	// Day is the unresolved day-of-month.
	Day int

	// Candidates are discussion-safe worker IDs in ascending rank order.
	// Empty means nobody can legally take the day at all.
	Candidates []string
}

// Proposal is the best-effort draft built after both solver passes fail.
type Proposal struct {
	// Days maps day-of-month to the provisionally assigned worker ID.
	// Days with no legal candidate are absent.
	Days map[int]string

	// Open lists the days needing human arbitration, in day order.
	Open []OpenDay
}

// WorkerStats aggregates one worker's share of a completed roster.
type WorkerStats struct {
	ID            string
	Name          string
	Shifts        int
	WeekendShifts int
}

// Stats aggregates a completed roster.
type Stats struct {
	// PerWorker is ordered by ascending rank.
	PerWorker []WorkerStats

	// SplitWeekends counts Friday+Sunday pairs served by the same worker
	// with a different worker on the Saturday between.
	SplitWeekends int
}

// Result is the outcome of a Generate call. Exactly one Status is set;
// the populated fields depend on it.
type Result struct {
	Status Status

	// Assignments maps every day of the month to a worker ID. Populated
	// for the three scheduled statuses.
	Assignments map[int]string

	// Stats for the completed roster. Populated alongside Assignments.
	Stats *Stats

	// Seed is the seed the jitter actually used, echoing the request.
	Seed string

	// Conflicts lists lock problems. Populated for StatusInvalidLocks.
	Conflicts []LockConflict

	// Reasons are the high-level search failure explanations. Populated
	// for StatusInfeasible.
	Reasons []string

	// Proposal is the best-effort draft. Populated for StatusInfeasible
	// when at least some days could be filled.
	Proposal *Proposal
}
