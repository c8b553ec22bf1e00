package service

import (
	"context"
	"time"

	"github.com/alexanderramin/rueda/internal/config"
	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/scheduler"
	"github.com/alexanderramin/rueda/internal/validator"
)

// RunRequest selects the inputs of one scheduling run. Config takes precedence
// over ConfigPath; the path fields and Seed override the configuration.
type RunRequest struct {
	ConfigPath      string
	Config          *config.Config
	PreferencesPath string
	RosterPath      string
	Seed            *int64
	DryRun          bool
}

// RunResult holds the stored run plus everything computed about it.
type RunResult struct {
	Run         *domain.Run
	Config      *config.Config
	Result      *scheduler.Result
	Conflicts   validator.ConflictReport
	Violations  []validator.Violation
	Preferences validator.PreferenceAudit
	// InputWarnings lists preference rows that were skipped.
	InputWarnings []error
	Duration      time.Duration
	Persisted     bool
}

// RevalidateResult is the ConflictValidator re-run on a stored schedule.
type RevalidateResult struct {
	Run                *domain.Run
	Report             validator.ConflictReport
	FingerprintMatches bool
}

type ScheduleService interface {
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
}

type RunService interface {
	List(ctx context.Context, limit int) ([]*domain.Run, error)
	Get(ctx context.Context, id string) (*domain.Run, error)
	Revalidate(ctx context.Context, id string) (*RevalidateResult, error)
}
