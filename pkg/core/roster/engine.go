package roster

import (
	"fmt"
	"sort"
)

const (
	// defaultCap is the shifts-per-month cap for regular workers when the
	// request leaves it unspecified.
	defaultCap = 5

	// maxWorkers is the roster size limit.
	maxWorkers = 10

	// maxWeekendBlocks is how many distinct Friday/Saturday/Sunday triplets
	// one worker may touch within a month.
	maxWeekendBlocks = 2

	// certifiedRankCount is how many of the best ranks are certified for
	// Tuesday/Thursday duty.
	certifiedRankCount = 5
)

// worker is the normalized, search-ready form of a WorkerSpec.
type worker struct {
	id        string
	name      string
	rank      int
	role      Role
	cap       int
	target    int
	certified bool

	// prefs is 1-based by day-of-month.
	prefs []Preference

	// clinic marks the worker's fixed weekly clinic weekdays.
	clinic [7]bool
}

func (w *worker) pref(day int) Preference {
	return w.prefs[day]
}

// engine bundles the normalized request with the month calendar. It is
// immutable once built; all mutation happens in per-invocation rosterState
// values, so one engine can drive several passes.
type engine struct {
	cal      *calendar
	workers  []*worker
	byID     map[string]*worker
	locks    map[int]string
	prevLast string
	seed     string

	// wanters is 1-based by day: workers with PrefWant, ascending rank.
	wanters [][]*worker

	targetSum int
}

func newEngine(req *Request) (*engine, error) {
	if req == nil {
		return nil, fmt.Errorf("request is nil")
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("month %d out of range", req.Month)
	}
	if len(req.Workers) == 0 {
		return nil, fmt.Errorf("no workers in request")
	}
	if len(req.Workers) > maxWorkers {
		return nil, fmt.Errorf("roster has %d workers (max %d)", len(req.Workers), maxWorkers)
	}

	cal := newCalendar(req.Year, req.Month)

	eng := &engine{
		cal:      cal,
		byID:     make(map[string]*worker, len(req.Workers)),
		locks:    make(map[int]string, len(req.Locks)),
		prevLast: req.PreviousLastWorker,
		seed:     req.Seed,
	}

	for i := range req.Workers {
		w, err := normalizeWorker(&req.Workers[i], cal)
		if err != nil {
			return nil, err
		}
		if _, dup := eng.byID[w.id]; dup {
			return nil, fmt.Errorf("duplicate worker id %q", w.id)
		}
		eng.byID[w.id] = w
		eng.workers = append(eng.workers, w)
		eng.targetSum += w.target
	}

	// Deterministic processing order: ascending rank, id as a final key
	// in case of duplicate ranks.
	sort.Slice(eng.workers, func(i, j int) bool {
		a, b := eng.workers[i], eng.workers[j]
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		return a.id < b.id
	})

	markCertified(eng.workers)

	for day, id := range req.Locks {
		if day < 1 || day > cal.days {
			return nil, fmt.Errorf("lock on day %d is outside the month (1..%d)", day, cal.days)
		}
		if _, ok := eng.byID[id]; !ok {
			return nil, fmt.Errorf("lock on day %d references unknown worker %q", day, id)
		}
		eng.locks[day] = id
	}

	eng.wanters = make([][]*worker, cal.days+1)
	for day := 1; day <= cal.days; day++ {
		for _, w := range eng.workers {
			if w.pref(day) == PrefWant {
				eng.wanters[day] = append(eng.wanters[day], w)
			}
		}
	}

	return eng, nil
}

func normalizeWorker(spec *WorkerSpec, cal *calendar) (*worker, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("worker with empty id")
	}

	w := &worker{
		id:   spec.ID,
		name: spec.Name,
		rank: spec.Rank,
		role: spec.Role,
	}
	if w.role == "" {
		w.role = RoleRegular
	}

	// Lead caps are fixed regardless of any configured value; only regular
	// workers have a configurable cap.
	switch w.role {
	case RoleLeadPrimary:
		w.cap = 1
	case RoleLeadDeputy:
		w.cap = 2
	case RoleRegular:
		w.cap = defaultCap
		if spec.Cap != nil {
			w.cap = max(*spec.Cap, 0)
		}
	default:
		return nil, fmt.Errorf("worker %q has unknown role %q", spec.ID, spec.Role)
	}

	w.target = max(spec.Target, 0)

	w.prefs = make([]Preference, cal.days+1)
	for day, pref := range spec.Prefs {
		if day < 1 || day > cal.days {
			return nil, fmt.Errorf("worker %q has a preference on day %d, outside the month (1..%d)", spec.ID, day, cal.days)
		}
		w.prefs[day] = pref
	}

	for _, wd := range spec.ClinicDays {
		w.clinic[int(wd)%7] = true
	}

	return w, nil
}

// markCertified flags the workers holding the five best ranks as eligible
// for Tuesday/Thursday duty. Workers must already be sorted by rank.
func markCertified(workers []*worker) {
	seen := 0
	lastRank := 0
	for _, w := range workers {
		if seen == 0 || w.rank != lastRank {
			seen++
			lastRank = w.rank
		}
		w.certified = seen <= certifiedRankCount
	}
}

// forcedWant returns the worker a day must go to under the conditional
// want rule: the lowest-ranked wanter still below their target, judged
// against live counts. Nil when no want is currently binding.
//
// The same function serves the lock validator and the solver so the two
// can never disagree about which assignments are forced.
func (e *engine) forcedWant(day int, counts map[string]int) *worker {
	for _, w := range e.wanters[day] {
		if counts[w.id] < w.target {
			return w
		}
	}
	return nil
}
