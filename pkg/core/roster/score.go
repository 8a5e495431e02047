package roster

import (
	"hash/fnv"
	"sort"
	"strconv"
)

// Soft scoring weights. Lower total = more preferred.
const (
	// scoreWant pulls wanters back toward the front of the ordering once
	// their binding claim has lapsed (target already met).
	scoreWant = -250

	// scoreAvoid penalizes days the worker asked to avoid.
	scoreAvoid = 50

	// scoreAlternating penalizes serving day-2 or day+2 as well,
	// discouraging an every-other-day pattern.
	scoreAlternating = 10

	// scoreTargetGap scales with the distance between the worker's shift
	// count after this assignment and their personal target.
	scoreTargetGap = 12

	// scorePreClinic penalizes the day immediately before one of the
	// worker's fixed weekly clinic days.
	scorePreClinic = 18
)

// score rates a hard-eligible (day, worker) pair.
func (e *engine) score(st *rosterState, day int, w *worker) int {
	s := 0

	switch w.pref(day) {
	case PrefWant:
		s += scoreWant
	case PrefAvoid:
		s += scoreAvoid
	}

	if day-2 >= 1 && st.assigned[day-2] == w.id {
		s += scoreAlternating
	}
	if day+2 <= e.cal.days && st.assigned[day+2] == w.id {
		s += scoreAlternating
	}

	next := st.counts[w.id] + 1
	gap := next - w.target
	if gap < 0 {
		gap = -gap
	}
	s += scoreTargetGap * gap

	// The day before a clinic day is a bad night for being called out.
	// Checked by weekday so the rule also covers the month's last day.
	nextDay := e.cal.date(day).AddDate(0, 0, 1)
	if w.clinic[int(nextDay.Weekday())] {
		s += scorePreClinic
	}

	return s
}

// jitter derives a deterministic pseudo-random tie-break value from the
// seed, the day and the worker id. Hashing keeps the value independent of
// evaluation order, so identical requests order identically.
func (e *engine) jitter(day int, w *worker) uint64 {
	h := fnv.New64a()
	h.Write([]byte(e.seed))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(day)))
	h.Write([]byte{0})
	h.Write([]byte(w.id))
	return h.Sum64()
}

// orderCandidates sorts the candidates for a day into try order: wanters
// strictly before non-wanters (wanters by ascending rank), then by the
// lexicographic tuple (score, jitter, rank).
func (e *engine) orderCandidates(st *rosterState, day int, cands []*worker) {
	type rated struct {
		w      *worker
		want   bool
		score  int
		jitter uint64
	}

	rs := make([]rated, len(cands))
	for i, w := range cands {
		rs[i] = rated{
			w:      w,
			want:   w.pref(day) == PrefWant,
			score:  e.score(st, day, w),
			jitter: e.jitter(day, w),
		}
	}

	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if a.want != b.want {
			return a.want
		}
		if a.want {
			// Both want the day: the lower rank wants it "most".
			return a.w.rank < b.w.rank
		}
		if a.score != b.score {
			return a.score < b.score
		}
		if a.jitter != b.jitter {
			return a.jitter < b.jitter
		}
		return a.w.rank < b.w.rank
	})

	for i := range rs {
		cands[i] = rs[i].w
	}
}
