package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ferndalepractice/oncall-rota/internal/config"
	"github.com/ferndalepractice/oncall-rota/pkg/core/roster"
)

type mockLoader struct {
	rf      *config.RequestFile
	err     error
	gotPath string
}

func (m *mockLoader) LoadRequest(path string) (*config.RequestFile, error) {
	m.gotPath = path
	return m.rf, m.err
}

func solvableRequestFile() *config.RequestFile {
	return &config.RequestFile{
		Year:  2026,
		Month: 6,
		Seed:  "from-file",
		Workers: []config.WorkerEntry{
			{ID: "w1", Rank: 1, Target: 5},
			{ID: "w2", Rank: 2, Target: 5},
			{ID: "w3", Rank: 3, Target: 5},
			{ID: "w4", Rank: 4, Target: 5},
			{ID: "w5", Rank: 5, Target: 5},
			{ID: "w6", Rank: 6, Target: 5},
		},
	}
}

func TestSolveRoster(t *testing.T) {
	loader := &mockLoader{rf: solvableRequestFile()}

	res, err := SolveRoster(context.Background(), loader, zap.NewNop(), "june.yaml", "")
	require.NoError(t, err)

	assert.Equal(t, "june.yaml", loader.gotPath)
	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err)

	assert.Equal(t, 2026, res.Year)
	assert.Equal(t, time.June, res.Month)
	assert.Equal(t, 30, res.Days)

	require.NotNil(t, res.Outcome)
	assert.Equal(t, roster.StatusScheduled, res.Outcome.Status)
	assert.Equal(t, "from-file", res.Outcome.Seed)
}

func TestSolveRosterSeedOverride(t *testing.T) {
	loader := &mockLoader{rf: solvableRequestFile()}

	res, err := SolveRoster(context.Background(), loader, zap.NewNop(), "june.yaml", "second-opinion")
	require.NoError(t, err)
	assert.Equal(t, "second-opinion", res.Outcome.Seed)
}

func TestSolveRosterLoadFailure(t *testing.T) {
	loader := &mockLoader{err: assert.AnError}

	_, err := SolveRoster(context.Background(), loader, zap.NewNop(), "june.yaml", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load request")
}

func TestSolveRosterBadClinicRule(t *testing.T) {
	rf := solvableRequestFile()
	rf.Workers[0].Clinic = "EVERY TUESDAY"
	loader := &mockLoader{rf: rf}

	_, err := SolveRoster(context.Background(), loader, zap.NewNop(), "june.yaml", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build request")
}

func TestSolveRosterGenerationRejectsRequest(t *testing.T) {
	rf := solvableRequestFile()
	rf.Workers = nil
	loader := &mockLoader{rf: rf}

	_, err := SolveRoster(context.Background(), loader, zap.NewNop(), "june.yaml", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation failed")
}
