package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ferndalepractice/oncall-rota/internal/config"
	"github.com/ferndalepractice/oncall-rota/pkg/core/roster"
)

// RequestLoader loads a roster request file from a path. The production
// implementation is internal/config; tests substitute an in-memory one.
type RequestLoader interface {
	LoadRequest(path string) (*config.RequestFile, error)
}

// FileLoader is the production RequestLoader backed by the filesystem.
type FileLoader struct{}

func (FileLoader) LoadRequest(path string) (*config.RequestFile, error) {
	return config.LoadRequest(path)
}

// SolveRosterResult carries one generation run's identity and outcome.
type SolveRosterResult struct {
	RunID    string
	Year     int
	Month    time.Month
	Days     int
	Duration time.Duration
	Outcome  *roster.Result
}

// SolveRoster loads a roster request file, runs the generation pipeline
// and returns the outcome. A non-empty seedOverride replaces the file's
// seed, which is how a second opinion on an under-constrained month is
// requested without editing the file.
func SolveRoster(ctx context.Context, loader RequestLoader, logger *zap.Logger, path, seedOverride string) (*SolveRosterResult, error) {
	runID := uuid.New().String()
	logger.Info("Solving roster",
		zap.String("run_id", runID),
		zap.String("path", path))

	rf, err := loader.LoadRequest(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load request: %w", err)
	}

	if seedOverride != "" {
		rf.Seed = seedOverride
		logger.Debug("Seed overridden", zap.String("seed", seedOverride))
	}

	req, err := rf.ToRequest()
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	logger.Debug("Request loaded",
		zap.Int("year", rf.Year),
		zap.Int("month", rf.Month),
		zap.Int("workers", len(rf.Workers)),
		zap.Int("locks", len(rf.Locks)))

	start := time.Now()
	outcome, err := roster.Generate(req)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	elapsed := time.Since(start)

	logger.Info("Roster generation finished",
		zap.String("run_id", runID),
		zap.String("status", string(outcome.Status)),
		zap.Duration("duration", elapsed))

	switch outcome.Status {
	case roster.StatusInvalidLocks:
		for _, c := range outcome.Conflicts {
			logger.Warn("Lock conflict",
				zap.Int("day", c.Day),
				zap.String("worker", c.WorkerID),
				zap.String("rule", c.Rule))
		}
	case roster.StatusInfeasible:
		for _, reason := range outcome.Reasons {
			logger.Warn("Roster infeasible", zap.String("reason", reason))
		}
		if outcome.Proposal != nil {
			logger.Info("Partial proposal built",
				zap.Int("filled", len(outcome.Proposal.Days)),
				zap.Int("open", len(outcome.Proposal.Open)))
		}
	}

	return &SolveRosterResult{
		RunID:    runID,
		Year:     req.Year,
		Month:    req.Month,
		Days:     roster.DaysInMonth(req.Year, req.Month),
		Duration: elapsed,
		Outcome:  outcome,
	}, nil
}
