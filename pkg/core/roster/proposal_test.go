package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDayFor(prop *Proposal, day int) (OpenDay, bool) {
	for _, od := range prop.Open {
		if od.Day == day {
			return od, true
		}
	}
	return OpenDay{}, false
}

func TestBuildProposalSingleWorker(t *testing.T) {
	eng := mustEngine(t, &Request{
		Year:    2026,
		Month:   time.June,
		Workers: []WorkerSpec{{ID: "solo", Rank: 1, Target: 5}},
	})

	prop := eng.buildProposal()

	// The rest rule allows at most every other day, so half the month stays
	// genuinely open no matter which predicate is applied.
	assert.Equal(t, "solo", prop.Days[1])
	assert.Equal(t, "solo", prop.Days[9], "cap of 5 is reached within the normal pass")

	od, ok := openDayFor(prop, 2)
	require.True(t, ok)
	assert.Empty(t, od.Candidates, "a rest day has no candidate under any predicate")

	// Day 11 overruns the cap, so it is committed by the discussion-safe
	// predicate and flagged at the same time.
	od, ok = openDayFor(prop, 11)
	require.True(t, ok)
	assert.Equal(t, []string{"solo"}, od.Candidates)
	assert.Equal(t, "solo", prop.Days[11])

	// Days 5, 7 and 13 consume both allowed weekend blocks; the third
	// weekend is untouchable even for discussion.
	for _, day := range []int{19, 20, 21} {
		od, ok := openDayFor(prop, day)
		require.True(t, ok, "day %d should be open", day)
		assert.Empty(t, od.Candidates)
	}

	for day := 2; day <= eng.cal.days; day++ {
		if prop.Days[day] != "" {
			assert.NotEqual(t, prop.Days[day-1], prop.Days[day],
				"draft puts solo on consecutive days %d and %d", day-1, day)
		}
	}
}

func TestBuildProposalWantIsPreferredNotBinding(t *testing.T) {
	eng := mustEngine(t, &Request{
		Year:  2026,
		Month: time.June,
		Workers: []WorkerSpec{
			{ID: "senior", Rank: 1, Target: 5},
			{ID: "keen", Rank: 2, Target: 0, Prefs: map[int]Preference{1: PrefWant}},
		},
	})

	prop := eng.buildProposal()

	// keen's want can no longer be binding (target zero), but the greedy
	// ordering still puts wanters first.
	assert.Equal(t, "keen", prop.Days[1])
}

func TestBuildProposalDiscussionFallbackOrdering(t *testing.T) {
	eng := mustEngine(t, &Request{
		Year:  2026,
		Month: time.June,
		Workers: []WorkerSpec{
			{ID: "a", Rank: 2, Target: 0, Cap: intPtr(0)},
			{ID: "b", Rank: 1, Target: 0, Cap: intPtr(0)},
		},
	})

	prop := eng.buildProposal()

	// Zero caps force every day through the discussion-safe predicate,
	// which commits the best rank and lists everyone legal.
	od, ok := openDayFor(prop, 1)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, od.Candidates)
	assert.Equal(t, "b", prop.Days[1])

	// b rests on day 2, so only a is listed.
	od, ok = openDayFor(prop, 2)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, od.Candidates)
	assert.Equal(t, "a", prop.Days[2])
}
