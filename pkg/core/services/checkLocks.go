package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ferndalepractice/oncall-rota/pkg/core/roster"
)

// CheckLocksResult is the pre-flight verdict on a request's pinned days.
type CheckLocksResult struct {
	Locks     int
	Conflicts []roster.LockConflict
}

// CheckLocks loads a request file and runs only the static lock validation,
// with no solver search. It answers "are the pinned days even jointly
// legal" before anyone spends time on preferences.
func CheckLocks(ctx context.Context, loader RequestLoader, logger *zap.Logger, path string) (*CheckLocksResult, error) {
	rf, err := loader.LoadRequest(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load request: %w", err)
	}

	req, err := rf.ToRequest()
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	conflicts, err := roster.ValidateLocks(req)
	if err != nil {
		return nil, fmt.Errorf("lock validation failed: %w", err)
	}

	logger.Info("Lock check finished",
		zap.Int("locks", len(rf.Locks)),
		zap.Int("conflicts", len(conflicts)))

	return &CheckLocksResult{
		Locks:     len(rf.Locks),
		Conflicts: conflicts,
	}, nil
}
