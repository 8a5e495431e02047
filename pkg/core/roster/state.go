package roster

import "time"

// rosterState is the mutable working state of one solver or proposal
// invocation: the day assignments plus the per-worker bookkeeping the hard
// rules and the scorer read. It is created fresh per invocation and never
// shared.
type rosterState struct {
	// assigned is 1-based by day; "" means unassigned.
	assigned []string

	// counts is the running shift count per worker id.
	counts map[string]int

	// blockShifts counts shifts per (worker, weekend-block key).
	blockShifts map[string]map[time.Time]int

	// blocksTouched is the number of distinct weekend blocks per worker.
	blocksTouched map[string]int
}

func newRosterState(cal *calendar) *rosterState {
	return &rosterState{
		assigned:      make([]string, cal.days+1),
		counts:        make(map[string]int),
		blockShifts:   make(map[string]map[time.Time]int),
		blocksTouched: make(map[string]int),
	}
}

// apply assigns a worker to a day and updates the bookkeeping.
// undo with the same arguments is its exact inverse.
func (s *rosterState) apply(cal *calendar, day int, w *worker) {
	s.assigned[day] = w.id
	s.counts[w.id]++

	key, ok := cal.blockKey(day)
	if !ok {
		return
	}

	blocks := s.blockShifts[w.id]
	if blocks == nil {
		blocks = make(map[time.Time]int)
		s.blockShifts[w.id] = blocks
	}
	if blocks[key] == 0 {
		s.blocksTouched[w.id]++
	}
	blocks[key]++
}

// undo reverses apply, including the "last shift in this block" transition.
func (s *rosterState) undo(cal *calendar, day int, w *worker) {
	s.assigned[day] = ""
	s.counts[w.id]--

	key, ok := cal.blockKey(day)
	if !ok {
		return
	}

	blocks := s.blockShifts[w.id]
	blocks[key]--
	if blocks[key] == 0 {
		delete(blocks, key)
		s.blocksTouched[w.id]--
	}
}

// wouldBeThirdBlock reports whether assigning the day would put the worker
// into a third distinct weekend block.
func (s *rosterState) wouldBeThirdBlock(cal *calendar, day int, w *worker) bool {
	key, ok := cal.blockKey(day)
	if !ok {
		return false
	}
	if s.blockShifts[w.id][key] > 0 {
		// Already in this block; no new block is created.
		return false
	}
	return s.blocksTouched[w.id] >= maxWeekendBlocks
}
