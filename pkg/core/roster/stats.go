package roster

import "time"

// aggregateStats derives post-hoc totals from a completed assignment.
func (e *engine) aggregateStats(assigned []string) *Stats {
	stats := &Stats{}

	byID := make(map[string]*WorkerStats, len(e.workers))
	stats.PerWorker = make([]WorkerStats, 0, len(e.workers))
	for _, w := range e.workers {
		stats.PerWorker = append(stats.PerWorker, WorkerStats{ID: w.id, Name: w.name})
		byID[w.id] = &stats.PerWorker[len(stats.PerWorker)-1]
	}

	for day := 1; day <= e.cal.days; day++ {
		ws := byID[assigned[day]]
		if ws == nil {
			continue
		}
		ws.Shifts++
		if e.cal.isWeekend(day) {
			ws.WeekendShifts++
		}
	}

	// A split weekend: the same worker takes Friday and Sunday with
	// somebody else between them on the Saturday.
	for day := 1; day+2 <= e.cal.days; day++ {
		if e.cal.weekday(day) != time.Friday {
			continue
		}
		fri, sat, sun := assigned[day], assigned[day+1], assigned[day+2]
		if fri != "" && fri == sun && sat != fri {
			stats.SplitWeekends++
		}
	}

	return stats
}
