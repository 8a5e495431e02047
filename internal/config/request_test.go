package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferndalepractice/oncall-rota/pkg/core/roster"
)

func writeRequestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validRequestYAML = `
year: 2026
month: 6
seed: summer
previousMonthLast: gp-khan
workers:
  - id: gp-khan
    name: Dr Khan
    rank: 1
    role: lead-primary
    target: 1
  - id: gp-osei
    rank: 2
    target: 5
    cap: 6
    clinic: FREQ=WEEKLY;BYDAY=TU,TH
    prefs:
      12: cannot
      20: want
locks:
  3: gp-osei
`

func TestLoadRequest(t *testing.T) {
	rf, err := LoadRequest(writeRequestFile(t, validRequestYAML))
	require.NoError(t, err)

	assert.Equal(t, 2026, rf.Year)
	assert.Equal(t, 6, rf.Month)
	assert.Equal(t, "summer", rf.Seed)
	assert.Equal(t, "gp-khan", rf.PreviousMonthLast)
	require.Len(t, rf.Workers, 2)
	assert.Equal(t, "gp-osei", rf.Locks[3])
}

func TestLoadRequestMissingFile(t *testing.T) {
	_, err := LoadRequest(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read request file")
}

func TestLoadRequestMalformedYAML(t *testing.T) {
	_, err := LoadRequest(writeRequestFile(t, "workers: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse request file")
}

func TestValidateRequestRejections(t *testing.T) {
	base := func() *RequestFile {
		return &RequestFile{
			Year:  2026,
			Month: 6,
			Workers: []WorkerEntry{
				{ID: "a", Rank: 1, Target: 5},
				{ID: "b", Rank: 2, Target: 5},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(rf *RequestFile)
		wantErr string
	}{
		{
			name:    "month out of range",
			mutate:  func(rf *RequestFile) { rf.Month = 13 },
			wantErr: "request validation failed",
		},
		{
			name:    "no workers",
			mutate:  func(rf *RequestFile) { rf.Workers = nil },
			wantErr: "request validation failed",
		},
		{
			name:    "duplicate worker id",
			mutate:  func(rf *RequestFile) { rf.Workers[1].ID = "a" },
			wantErr: `duplicate worker id "a"`,
		},
		{
			name:    "unknown role",
			mutate:  func(rf *RequestFile) { rf.Workers[0].Role = "manager" },
			wantErr: "request validation failed",
		},
		{
			name:    "preference outside month",
			mutate:  func(rf *RequestFile) { rf.Workers[0].Prefs = map[int]string{31: "avoid"} },
			wantErr: "preference day 31 is outside the month (1..30)",
		},
		{
			name:    "unknown preference value",
			mutate:  func(rf *RequestFile) { rf.Workers[0].Prefs = map[int]string{5: "maybe"} },
			wantErr: `unknown preference "maybe"`,
		},
		{
			name:    "broken clinic rule",
			mutate:  func(rf *RequestFile) { rf.Workers[0].Clinic = "EVERY TUESDAY" },
			wantErr: "invalid clinic rule in workers[0]",
		},
		{
			name:    "lock outside month",
			mutate:  func(rf *RequestFile) { rf.Locks = map[int]string{31: "a"} },
			wantErr: "lock day 31 is outside the month (1..30)",
		},
		{
			name:    "lock on unknown worker",
			mutate:  func(rf *RequestFile) { rf.Locks = map[int]string{3: "ghost"} },
			wantErr: `lock on day 3 references unknown worker "ghost"`,
		},
		{
			name:    "unknown previous closer",
			mutate:  func(rf *RequestFile) { rf.PreviousMonthLast = "ghost" },
			wantErr: `previousMonthLast references unknown worker "ghost"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rf := base()
			tc.mutate(rf)
			err := ValidateRequest(rf)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestToRequest(t *testing.T) {
	rf, err := LoadRequest(writeRequestFile(t, validRequestYAML))
	require.NoError(t, err)

	req, err := rf.ToRequest()
	require.NoError(t, err)

	assert.Equal(t, 2026, req.Year)
	assert.Equal(t, time.June, req.Month)
	assert.Equal(t, "summer", req.Seed)
	assert.Equal(t, "gp-khan", req.PreviousLastWorker)
	assert.Equal(t, map[int]string{3: "gp-osei"}, req.Locks)

	require.Len(t, req.Workers, 2)
	lead, reg := req.Workers[0], req.Workers[1]

	assert.Equal(t, roster.RoleLeadPrimary, lead.Role)
	assert.Equal(t, "Dr Khan", lead.Name)

	assert.Equal(t, roster.RoleRegular, reg.Role)
	assert.Equal(t, "gp-osei", reg.Name, "name falls back to the id")
	require.NotNil(t, reg.Cap)
	assert.Equal(t, 6, *reg.Cap)
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Thursday}, reg.ClinicDays)
	assert.Equal(t, map[int]roster.Preference{
		12: roster.PrefCannot,
		20: roster.PrefWant,
	}, reg.Prefs)
}

func TestClinicWeekdays(t *testing.T) {
	days, err := clinicWeekdays("FREQ=WEEKLY;BYDAY=MO,WE,FR")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, days)

	_, err = clinicWeekdays("FREQ=YEARLY;BYMONTH=6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches no weekday")

	_, err = clinicWeekdays("FREQ=HOURLY")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a weekly weekday pattern")
}
