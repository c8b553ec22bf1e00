package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/rueda/internal/config"
	"github.com/alexanderramin/rueda/internal/db"
	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/importer"
	"github.com/alexanderramin/rueda/internal/metrics"
	"github.com/alexanderramin/rueda/internal/preference"
	"github.com/alexanderramin/rueda/internal/repository"
	"github.com/alexanderramin/rueda/internal/scheduler"
	"github.com/alexanderramin/rueda/internal/validator"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type scheduleService struct {
	uow      db.UnitOfWork
	metrics  *metrics.Recorder
	logger   zerolog.Logger
	observer UseCaseObserver
	now      func() time.Time
}

// NewScheduleService wires the run pipeline. rec may be nil to skip metrics.
func NewScheduleService(
	uow db.UnitOfWork,
	rec *metrics.Recorder,
	logger zerolog.Logger,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		uow:      uow,
		metrics:  rec,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *scheduleService) Run(ctx context.Context, req RunRequest) (out *RunResult, err error) {
	fields := map[string]any{"dry_run": req.DryRun}
	defer observe(ctx, s.observer, "schedule", fields, &err)()

	cfg, err := s.resolveConfig(req)
	if err != nil {
		return nil, err
	}
	fields["event"] = cfg.Event.Name
	fields["seed"] = cfg.Scheduler.Seed

	slots, err := cfg.Slots()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy(slots)
	if err != nil {
		return nil, err
	}

	prefs, warnings, err := loadPreferences(cfg.Inputs.Preferences)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		s.logger.Warn().Err(w).Str("file", cfg.Inputs.Preferences).Msg("skipping preference row")
	}
	var roster *domain.Roster
	if cfg.Inputs.Roster != "" {
		if roster, err = loadRoster(cfg.Inputs.Roster); err != nil {
			return nil, err
		}
	}

	opts := cfg.Options()
	opts.Logger = &s.logger

	started := time.Now()
	sched, err := scheduler.New(scheduler.Input{
		Slots:                  slots,
		Roster:                 roster,
		Policy:                 policy,
		Preferences:            prefs,
		MaxMeetingsPerProvider: cfg.Capacity.MaxMeetingsPerProvider,
		CapacityOverrides:      cfg.Capacity.Overrides,
		MaxMeetingsPerSlot:     cfg.Capacity.MaxMeetingsPerSlot,
		Pins:                   cfg.Pinned,
	}, opts)
	if err != nil {
		return nil, err
	}
	res, err := sched.Run()
	if err != nil {
		return nil, fmt.Errorf("scheduling: %w", err)
	}
	elapsed := time.Since(started)

	out = &RunResult{
		Config:    cfg,
		Result:    res,
		Conflicts: validator.Validate(res.Schedule),
		Violations: validator.Audit(res.Schedule, validator.Constraints{
			Policy:             policy,
			MaxGroupSize:       cfg.Groups.MaxSize,
			MaxMeetingsPerSlot: cfg.Capacity.MaxMeetingsPerSlot,
			Capacity:           res.Capacity.Max,
		}),
		Preferences:   validator.AuditPreferences(res.Schedule, res.Preferences),
		InputWarnings: warnings,
		Duration:      elapsed,
	}
	if out.Conflicts.HasConflicts() {
		s.logger.Error().Int("conflicts", out.Conflicts.TotalConflicts).Msg("schedule has conflicts")
	}

	out.Run, err = s.buildRun(cfg, res)
	if err != nil {
		return nil, err
	}
	fields["run_id"] = out.Run.ID
	fields["meetings"] = res.Stats.Meetings
	fields["shortfalls"] = len(res.Shortfalls)

	if s.metrics != nil {
		s.metrics.Record(res.Stats, res.Shortfalls, out.Conflicts.TotalConflicts, elapsed)
	}

	if req.DryRun {
		return out, nil
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteRunRepo(tx).Create(ctx, out.Run)
	})
	if err != nil {
		return nil, fmt.Errorf("storing run: %w", err)
	}
	out.Persisted = true
	return out, nil
}

// resolveConfig loads the configuration and applies request overrides.
func (s *scheduleService) resolveConfig(req RunRequest) (*config.Config, error) {
	cfg := req.Config
	if cfg == nil {
		loaded, err := config.Load(req.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		copied := *cfg
		cfg = &copied
	}
	if req.PreferencesPath != "" {
		cfg.Inputs.Preferences = req.PreferencesPath
	}
	if req.RosterPath != "" {
		cfg.Inputs.Roster = req.RosterPath
	}
	if req.Seed != nil {
		cfg.Scheduler.Seed = *req.Seed
	}
	if cfg.Inputs.Preferences == "" {
		return nil, domain.NewConfigurationError("inputs.prefs", "a preference file is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *scheduleService) buildRun(cfg *config.Config, res *scheduler.Result) (*domain.Run, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return &domain.Run{
		ID:                   uuid.New().String(),
		EventName:            cfg.Event.Name,
		Seed:                 res.Seed,
		Fingerprint:          res.Schedule.FingerprintHex(),
		Slots:                res.Slots,
		Schedule:             res.Schedule,
		Shortfalls:           res.Shortfalls,
		PreferencesTotal:     res.Stats.PreferencesTotal,
		PreferencesFulfilled: res.Stats.PreferencesFulfilled,
		ConfigYAML:           string(data),
		MeetingCount:         res.Schedule.Len(),
		CreatedAt:            s.now(),
	}, nil
}

func loadPreferences(path string) (*preference.Graph, []error, error) {
	rows, err := importer.LoadPreferences(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading preferences: %w", err)
	}
	warnings := importer.ValidatePreferences(rows)
	return importer.ToGraph(rows), warnings, nil
}

func loadRoster(path string) (*domain.Roster, error) {
	rows, err := importer.LoadRoster(path)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	roster, err := importer.ToRoster(rows)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return roster, nil
}
