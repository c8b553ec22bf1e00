package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/rueda/internal/config"
	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/importer"
	"github.com/alexanderramin/rueda/internal/metrics"
	"github.com/alexanderramin/rueda/internal/repository"
	"github.com/alexanderramin/rueda/internal/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func samplePrefs(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, importer.WriteSample(&buf))
	path := filepath.Join(t.TempDir(), "prefs.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Event.Name = "Test fair"
	cfg.Inputs.Preferences = samplePrefs(t)
	return cfg
}

func TestScheduleService_RunPersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	obs := &recordingObserver{}
	svc := NewScheduleService(testutil.NewTestUoW(database), nil, zerolog.Nop(), obs)

	out, err := svc.Run(ctx, RunRequest{Config: testConfig(t)})
	require.NoError(t, err)

	assert.True(t, out.Persisted)
	assert.False(t, out.Conflicts.HasConflicts())
	assert.Empty(t, out.Violations)
	assert.Empty(t, out.Preferences.Missing)
	assert.Equal(t, 12, out.Run.PreferencesTotal)
	assert.Equal(t, 12, out.Run.PreferencesFulfilled)
	assert.Contains(t, out.Run.ConfigYAML, "Test fair")

	runs := NewRunService(repository.NewSQLiteRunRepo(database))
	stored, err := runs.Get(ctx, out.Run.DisplayID())
	require.NoError(t, err)
	assert.Equal(t, out.Run.Fingerprint, stored.Fingerprint)
	assert.Equal(t, out.Run.Schedule.Len(), stored.Schedule.Len())

	re, err := runs.Revalidate(ctx, out.Run.ID)
	require.NoError(t, err)
	assert.False(t, re.Report.HasConflicts())
	assert.True(t, re.FingerprintMatches)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "schedule", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, out.Run.ID, obs.events[0].Fields["run_id"])
}

func TestScheduleService_DryRunStoresNothing(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	svc := NewScheduleService(testutil.NewTestUoW(database), nil, zerolog.Nop())

	out, err := svc.Run(ctx, RunRequest{Config: testConfig(t), DryRun: true})
	require.NoError(t, err)
	assert.False(t, out.Persisted)

	runs, err := NewRunService(repository.NewSQLiteRunRepo(database)).List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestScheduleService_SameSeedSameSchedule(t *testing.T) {
	ctx := context.Background()
	svc := NewScheduleService(testutil.NewTestUoW(testutil.NewTestDB(t)), nil, zerolog.Nop())
	cfg := testConfig(t)
	cfg.Scheduler.Shuffle = true
	seed := int64(99)

	a, err := svc.Run(ctx, RunRequest{Config: cfg, Seed: &seed, DryRun: true})
	require.NoError(t, err)
	b, err := svc.Run(ctx, RunRequest{Config: cfg, Seed: &seed, DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, int64(99), a.Run.Seed)
	assert.Equal(t, a.Run.Fingerprint, b.Run.Fingerprint)
	assert.NotEqual(t, a.Run.ID, b.Run.ID)
	assert.Equal(t, int64(1), cfg.Scheduler.Seed, "request overrides must not leak into the caller's config")
}

func TestScheduleService_RequiresPreferences(t *testing.T) {
	svc := NewScheduleService(testutil.NewTestUoW(testutil.NewTestDB(t)), nil, zerolog.Nop())
	cfg := config.Default()

	_, err := svc.Run(context.Background(), RunRequest{Config: cfg})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestScheduleService_ConfigurationErrorAbortsBeforeScheduling(t *testing.T) {
	obs := &recordingObserver{}
	svc := NewScheduleService(testutil.NewTestUoW(testutil.NewTestDB(t)), nil, zerolog.Nop(), obs)
	cfg := testConfig(t)
	cfg.Capacity.MaxMeetingsPerProvider = 0

	_, err := svc.Run(context.Background(), RunRequest{Config: cfg})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}

func TestScheduleService_RosterRejectsUnknownParticipants(t *testing.T) {
	cfg := testConfig(t)
	roster := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(roster, []byte("role,id\nprovider,Del Tajo Coffee\nrequester,Box Brand\n"), 0o644))

	svc := NewScheduleService(testutil.NewTestUoW(testutil.NewTestDB(t)), nil, zerolog.Nop())
	out, err := svc.Run(context.Background(), RunRequest{Config: cfg, RosterPath: roster, DryRun: true})
	require.NoError(t, err)

	counts := domain.CountShortfalls(out.Result.Shortfalls)
	assert.Positive(t, counts[domain.ShortfallUnknownParticipant])
	assert.Equal(t, 1, out.Result.Schedule.Len(), "only the known pair is scheduled")
	assert.Equal(t, 1, out.Run.PreferencesTotal)
}

func TestScheduleService_RecordsMetrics(t *testing.T) {
	rec := metrics.New()
	svc := NewScheduleService(testutil.NewTestUoW(testutil.NewTestDB(t)), rec, zerolog.Nop())

	_, err := svc.Run(context.Background(), RunRequest{Config: testConfig(t), DryRun: true})
	require.NoError(t, err)

	n, err := promtest.GatherAndCount(rec.Registry(), "rueda_preferences_total", "rueda_run_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestScheduleService_StoreFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 5, Err: boom}
	svc := NewScheduleService(uow, nil, zerolog.Nop())

	_, err := svc.Run(ctx, RunRequest{Config: testConfig(t)})
	require.ErrorIs(t, err, boom)

	runs, err := repository.NewSQLiteRunRepo(database).List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRunService_GetUnknownRun(t *testing.T) {
	runs := NewRunService(repository.NewSQLiteRunRepo(testutil.NewTestDB(t)))
	_, err := runs.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = runs.Revalidate(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
