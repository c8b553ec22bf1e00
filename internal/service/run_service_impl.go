package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/repository"
	"github.com/alexanderramin/rueda/internal/validator"
)

type runService struct {
	runs     repository.RunRepo
	observer UseCaseObserver
}

func NewRunService(runs repository.RunRepo, observers ...UseCaseObserver) RunService {
	return &runService{runs: runs, observer: useCaseObserverOrNoop(observers)}
}

func (s *runService) List(ctx context.Context, limit int) ([]*domain.Run, error) {
	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

func (s *runService) Get(ctx context.Context, id string) (*domain.Run, error) {
	return s.runs.GetByID(ctx, id)
}

// Revalidate runs the conflict check again on a stored schedule and confirms
// the stored fingerprint still matches.
func (s *runService) Revalidate(ctx context.Context, id string) (out *RevalidateResult, err error) {
	fields := map[string]any{"run": id}
	defer observe(ctx, s.observer, "revalidate", fields, &err)()

	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	report := validator.Validate(run.Schedule)
	fields["conflicts"] = report.TotalConflicts
	return &RevalidateResult{
		Run:                run,
		Report:             report,
		FingerprintMatches: run.Schedule.FingerprintHex() == run.Fingerprint,
	}, nil
}
