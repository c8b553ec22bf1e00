package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Calendar.SlotMinutes)
	assert.Equal(t, 2, cfg.Scheduler.CoverageSlots)
	assert.Equal(t, int64(1), cfg.Scheduler.Seed)
	assert.Equal(t, 3, cfg.Groups.MaxSize)
	assert.Equal(t, []scheduler.Target{{Size: 2, Count: 4}, {Size: 3, Count: 6}}, cfg.Groups.Targets)
	assert.Equal(t, 11, cfg.Capacity.MaxMeetingsPerProvider)
	assert.Equal(t, "~/.rueda/rueda.db", cfg.Database.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "event.yaml", `event:
  name: "Rueda 2025"
calendar:
  date: "2025-06-12"
  start: "09:00"
  end: "12:00"
  slot_minutes: 20
scheduler:
  coverage_slots: 0
  seed: 0
  fill_remaining: true
groups:
  max_size: 4
  targets:
    - size: 3
      count: 5
  ranges:
    - from_slot: 4
      to_slot: 8
      targets:
        - size: 2
          count: 2
capacity:
  max_meetings_per_provider: 8
  overrides:
    Acme: 3
availability:
  rules:
    - name: late-arrival
      participant: B1
      role: buyer
      from: "10:00"
  exclusions:
    - requester: B2
      provider: Acme
pinned:
  - requester: B3
    provider: Acme
    slot: 2
inputs:
  prefs: prefs.csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"event.name", cfg.Event.Name, "Rueda 2025"},
		{"calendar.slot_minutes", cfg.Calendar.SlotMinutes, 20},
		{"scheduler.coverage_slots", cfg.Scheduler.CoverageSlots, 0},
		{"scheduler.seed", cfg.Scheduler.Seed, int64(0)},
		{"scheduler.fill_remaining", cfg.Scheduler.FillRemaining, true},
		{"groups.max_size", cfg.Groups.MaxSize, 4},
		{"groups.targets", len(cfg.Groups.Targets), 1},
		{"groups.ranges", cfg.Groups.Ranges[0].To, 8},
		{"capacity.max", cfg.Capacity.MaxMeetingsPerProvider, 8},
		{"capacity.overrides", cfg.Capacity.Overrides["Acme"], 3},
		{"rule.from", cfg.Availability.Rules[0].From, "10:00"},
		{"exclusion", cfg.Availability.Exclusions[0].Provider, "Acme"},
		{"pinned", cfg.Pinned[0], scheduler.Pin{Requester: "B3", Provider: "Acme", Slot: 2}},
		{"inputs.prefs", cfg.Inputs.Preferences, filepath.Join(filepath.Dir(path), "prefs.csv")},
		{"logging.level", cfg.Logging.Level, "info"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
	require.NoError(t, cfg.Validate())
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "event.json", `{"calendar": {"start": "10:00", "end": "11:00"}, "scheduler": {"seed": 9}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.Scheduler.Seed)
	assert.Equal(t, "10:00", cfg.Calendar.Start)
	assert.Equal(t, 15, cfg.Calendar.SlotMinutes)

	slots, err := cfg.Slots()
	require.NoError(t, err)
	assert.Len(t, slots, 4)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RUEDA_SCHEDULER__SEED", "7")
	t.Setenv("RUEDA_CAPACITY__MAX_MEETINGS_PER_PROVIDER", "5")
	t.Setenv("RUEDA_DB", "/tmp/rueda-test.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Scheduler.Seed)
	assert.Equal(t, 5, cfg.Capacity.MaxMeetingsPerProvider)
	assert.Equal(t, "/tmp/rueda-test.db", cfg.Database.Path)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "event.toml", "seed = 1")
	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported config extension")
}

func TestValidate_CollectsConfigurationErrors(t *testing.T) {
	cfg := Default()
	cfg.Calendar.SlotMinutes = -5
	cfg.Capacity.MaxMeetingsPerProvider = 0
	cfg.Logging.Format = "xml"
	cfg.Availability.Rules = []RuleConfig{{Role: "janitor"}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	for _, field := range []string{"calendar.slot_minutes", "capacity.max_meetings_per_provider",
		"logging.format", "availability.rules[0].role"} {
		assert.ErrorContains(t, err, field)
	}
}

func TestPolicy_ClockRulesMapToSlots(t *testing.T) {
	cfg := Default()
	slots, err := cfg.Slots()
	require.NoError(t, err)
	require.Len(t, slots, 18)

	cfg.Availability.Rules = []RuleConfig{
		{Participant: "B1", Role: "buyer", From: "10:15"},
		{Participant: "S1", Role: "any", Blocked: []int{0}},
	}
	cfg.Availability.Exclusions = []ExclusionConfig{{Requester: "B2", Provider: "S1"}}

	policy, err := cfg.Policy(slots)
	require.NoError(t, err)
	assert.False(t, policy.IsEligible("B1", domain.RoleRequester, 6))
	assert.True(t, policy.IsEligible("B1", domain.RoleRequester, 7))
	assert.False(t, policy.IsEligible("S1", domain.RoleProvider, 0))
	assert.True(t, policy.IsEligible("S1", domain.RoleProvider, 1))
	assert.True(t, policy.IsExcludedPair("B2", "S1"))
}

func TestPolicy_SlotIndicesOverrideClocks(t *testing.T) {
	cfg := Default()
	slots, err := cfg.Slots()
	require.NoError(t, err)

	from, to := 2, 4
	cfg.Availability.Rules = []RuleConfig{{Participant: "B1", FromSlot: &from, ToSlot: &to}}
	policy, err := cfg.Policy(slots)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, policy.EligibleSlots("B1", domain.RoleRequester, len(slots)))
}

func TestPolicy_RuleOutsideDayIsConfigurationError(t *testing.T) {
	cfg := Default()
	slots, err := cfg.Slots()
	require.NoError(t, err)

	cfg.Availability.Rules = []RuleConfig{{Participant: "B1", From: "14:00"}}
	_, err = cfg.Policy(slots)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestOptions_MapsSchedulerSettings(t *testing.T) {
	cfg := Default()
	cfg.Scheduler.Shuffle = true
	opts := cfg.Options()
	assert.Equal(t, 2, opts.CoverageSlots)
	assert.Equal(t, 3, opts.MaxGroupSize)
	assert.Equal(t, int64(1), opts.Seed)
	assert.True(t, opts.Shuffle)
	assert.Len(t, opts.Groups.Targets, 2)
}

func TestDatabasePath_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := Default()
	p, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".rueda", "rueda.db"), p)

	cfg.Database.Path = "/var/lib/rueda.db"
	p, err = cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/rueda.db", p)
}

func TestWrite_ReloadsWithSameValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "event.yaml")
	cfg := Default()
	cfg.Event.Name = "Spring fair"
	cfg.Scheduler.Seed = 42
	cfg.Pinned = []scheduler.Pin{{Requester: "B1", Provider: "S1", Slot: 3}}

	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Spring fair", loaded.Event.Name)
	assert.Equal(t, int64(42), loaded.Scheduler.Seed)
	assert.Equal(t, cfg.Pinned, loaded.Pinned)
	assert.Equal(t, cfg.Groups.Targets, loaded.Groups.Targets)
}
