// Package config loads the event configuration from a YAML or JSON file and
// applies RUEDA_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/rueda/internal/availability"
	"github.com/alexanderramin/rueda/internal/calendar"
	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/scheduler"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "RUEDA_"

// Config is the full description of one matchmaking event.
type Config struct {
	Event        EventConfig        `json:"event" yaml:"event"`
	Calendar     CalendarConfig     `json:"calendar" yaml:"calendar"`
	Scheduler    SchedulerConfig    `json:"scheduler" yaml:"scheduler"`
	Groups       GroupsConfig       `json:"groups" yaml:"groups"`
	Capacity     CapacityConfig     `json:"capacity" yaml:"capacity"`
	Availability AvailabilityConfig `json:"availability" yaml:"availability"`
	Pinned       []scheduler.Pin    `json:"pinned" yaml:"pinned,omitempty"`
	Inputs       InputsConfig       `json:"inputs" yaml:"inputs"`
	Database     DatabaseConfig     `json:"database" yaml:"database"`
	Logging      LoggingConfig      `json:"logging" yaml:"logging"`
}

type EventConfig struct {
	Name string `json:"name" yaml:"name"`
}

// CalendarConfig bounds the event day. Start and End are HH:MM clocks on Date,
// or full RFC3339 timestamps.
type CalendarConfig struct {
	Date        string `json:"date" yaml:"date,omitempty"`
	Start       string `json:"start" yaml:"start"`
	End         string `json:"end" yaml:"end"`
	SlotMinutes int    `json:"slot_minutes" yaml:"slot_minutes"`
	Timezone    string `json:"timezone" yaml:"timezone,omitempty"`
}

type SchedulerConfig struct {
	CoverageSlots int   `json:"coverage_slots" yaml:"coverage_slots"`
	Seed          int64 `json:"seed" yaml:"seed"`
	Shuffle       bool  `json:"shuffle" yaml:"shuffle"`
	FillRemaining bool  `json:"fill_remaining" yaml:"fill_remaining"`
}

type GroupsConfig struct {
	MaxSize int                      `json:"max_size" yaml:"max_size"`
	Targets []scheduler.Target       `json:"targets" yaml:"targets"`
	Ranges  []scheduler.RangeTargets `json:"ranges" yaml:"ranges,omitempty"`
}

type CapacityConfig struct {
	MaxMeetingsPerProvider int `json:"max_meetings_per_provider" yaml:"max_meetings_per_provider"`
	// MaxMeetingsPerSlot caps concurrent meetings; 0 means unlimited.
	MaxMeetingsPerSlot int            `json:"max_meetings_per_slot" yaml:"max_meetings_per_slot"`
	Overrides          map[string]int `json:"overrides" yaml:"overrides,omitempty"`
}

type AvailabilityConfig struct {
	Rules      []RuleConfig      `json:"rules" yaml:"rules,omitempty"`
	Exclusions []ExclusionConfig `json:"exclusions" yaml:"exclusions,omitempty"`
}

// RuleConfig restricts participants to a window given either as HH:MM clocks
// (From, To) or as slot indices (FromSlot, ToSlot). Role is requester,
// provider, any, or empty for any.
type RuleConfig struct {
	Name        string `json:"name" yaml:"name,omitempty"`
	Participant string `json:"participant" yaml:"participant,omitempty"`
	Role        string `json:"role" yaml:"role,omitempty"`
	From        string `json:"from" yaml:"from,omitempty"`
	To          string `json:"to" yaml:"to,omitempty"`
	FromSlot    *int   `json:"from_slot" yaml:"from_slot,omitempty"`
	ToSlot      *int   `json:"to_slot" yaml:"to_slot,omitempty"`
	Blocked     []int  `json:"blocked" yaml:"blocked,omitempty"`
}

type ExclusionConfig struct {
	Requester string `json:"requester" yaml:"requester"`
	Provider  string `json:"provider" yaml:"provider"`
}

type InputsConfig struct {
	Preferences string `json:"prefs" yaml:"prefs"`
	Roster      string `json:"roster" yaml:"roster,omitempty"`
}

type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Default returns the configuration used when a key is absent.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.Event.Name == "" {
		c.Event.Name = "Business matchmaking"
	}
	if c.Calendar.Start == "" {
		c.Calendar.Start = "08:30"
	}
	if c.Calendar.End == "" {
		c.Calendar.End = "13:00"
	}
	if c.Calendar.SlotMinutes == 0 {
		c.Calendar.SlotMinutes = 15
	}
	if c.Scheduler.CoverageSlots == 0 {
		c.Scheduler.CoverageSlots = 2
	}
	if c.Scheduler.Seed == 0 {
		c.Scheduler.Seed = 1
	}
	if c.Groups.MaxSize == 0 {
		c.Groups.MaxSize = 3
	}
	if len(c.Groups.Targets) == 0 {
		c.Groups.Targets = []scheduler.Target{{Size: 2, Count: 4}, {Size: 3, Count: 6}}
	}
	if c.Capacity.MaxMeetingsPerProvider == 0 {
		c.Capacity.MaxMeetingsPerProvider = 11
	}
	if c.Database.Path == "" {
		c.Database.Path = "~/.rueda/rueda.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "auto"
	}
}

// defaultValues flattens Default into koanf keys. Loading them before the file
// lets an explicit zero in the file (seed: 0, coverage_slots: 0) win.
func defaultValues() map[string]any {
	d := Default()
	targets := make([]any, len(d.Groups.Targets))
	for i, t := range d.Groups.Targets {
		targets[i] = map[string]any{"size": t.Size, "count": t.Count}
	}
	return map[string]any{
		"event.name":                         d.Event.Name,
		"calendar.start":                     d.Calendar.Start,
		"calendar.end":                       d.Calendar.End,
		"calendar.slot_minutes":              d.Calendar.SlotMinutes,
		"scheduler.coverage_slots":           d.Scheduler.CoverageSlots,
		"scheduler.seed":                     d.Scheduler.Seed,
		"groups.max_size":                    d.Groups.MaxSize,
		"groups.targets":                     targets,
		"capacity.max_meetings_per_provider": d.Capacity.MaxMeetingsPerProvider,
		"database.path":                      d.Database.Path,
		"logging.level":                      d.Logging.Level,
		"logging.format":                     d.Logging.Format,
	}
}

// Load reads defaults, then the file at path (when non-empty), then RUEDA_
// environment variables. Nested keys use a double underscore:
// RUEDA_SCHEDULER__SEED=7 sets scheduler.seed. RUEDA_DB sets database.path.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	for key, val := range defaultValues() {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("default %s: %w", key, err)
		}
	}

	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if path != "" {
		cfg.resolveInputs(filepath.Dir(path))
	}
	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if key == "db" {
		return "database.path"
	}
	return strings.ReplaceAll(key, "__", ".")
}

// resolveInputs makes relative input paths relative to the config file.
func (c *Config) resolveInputs(dir string) {
	for _, p := range []*string{&c.Inputs.Preferences, &c.Inputs.Roster} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Validate reports every problem the scheduler would otherwise hit later, as
// joined ConfigurationErrors.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Slots(); err != nil {
		errs = append(errs, err)
	}
	if c.Capacity.MaxMeetingsPerProvider <= 0 {
		errs = append(errs, domain.NewConfigurationError("capacity.max_meetings_per_provider",
			"must be positive, got %d", c.Capacity.MaxMeetingsPerProvider))
	}
	if c.Capacity.MaxMeetingsPerSlot < 0 {
		errs = append(errs, domain.NewConfigurationError("capacity.max_meetings_per_slot",
			"must not be negative, got %d", c.Capacity.MaxMeetingsPerSlot))
	}
	for i, r := range c.Availability.Rules {
		if _, err := parseRuleRole(r.Role); err != nil {
			errs = append(errs, domain.NewConfigurationError(fmt.Sprintf("availability.rules[%d].role", i), "%v", err))
		}
		if (r.From != "" || r.To != "") && (r.FromSlot != nil || r.ToSlot != nil) {
			errs = append(errs, domain.NewConfigurationError(fmt.Sprintf("availability.rules[%d]", i),
				"use either from/to clocks or from_slot/to_slot, not both"))
		}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "auto", "console", "json":
	default:
		errs = append(errs, domain.NewConfigurationError("logging.format",
			"unknown format %q (expected auto, console or json)", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Location resolves the calendar timezone, UTC when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Calendar.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, domain.NewConfigurationError("calendar.timezone", "unknown timezone %q", c.Calendar.Timezone)
	}
	return loc, nil
}

// Slots generates the event calendar.
func (c *Config) Slots() ([]domain.Slot, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	start, end, err := calendar.ParseBounds(c.Calendar.Date, c.Calendar.Start, c.Calendar.End, loc)
	if err != nil {
		return nil, err
	}
	return calendar.Generate(start, end, c.Calendar.SlotMinutes)
}

// Policy builds the availability policy for the generated slots.
func (c *Config) Policy(slots []domain.Slot) (*availability.Policy, error) {
	var errs []error
	rules := make([]availability.Rule, 0, len(c.Availability.Rules))
	for i, rc := range c.Availability.Rules {
		field := fmt.Sprintf("availability.rules[%d]", i)
		role, err := parseRuleRole(rc.Role)
		if err != nil {
			errs = append(errs, domain.NewConfigurationError(field+".role", "%v", err))
			continue
		}
		from, to := 0, -1
		if rc.From != "" || rc.To != "" {
			from, to, err = calendar.Window(slots, rc.From, rc.To)
			if err != nil {
				errs = append(errs, domain.NewConfigurationError(field, "%v", err))
				continue
			}
		}
		if rc.FromSlot != nil {
			from = *rc.FromSlot
		}
		if rc.ToSlot != nil {
			to = *rc.ToSlot
		}
		rules = append(rules, availability.Rule{
			Name:        rc.Name,
			Participant: rc.Participant,
			Role:        role,
			From:        from,
			To:          to,
			Blocked:     rc.Blocked,
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	exclusions := make([]availability.Exclusion, len(c.Availability.Exclusions))
	for i, ex := range c.Availability.Exclusions {
		exclusions[i] = availability.Exclusion{Requester: ex.Requester, Provider: ex.Provider}
	}
	return availability.NewPolicy(len(slots), rules, exclusions)
}

// Options maps the scheduler settings onto scheduler.Options.
func (c *Config) Options() scheduler.Options {
	return scheduler.Options{
		CoverageSlots: c.Scheduler.CoverageSlots,
		MaxGroupSize:  c.Groups.MaxSize,
		Groups: scheduler.GroupPolicy{
			Targets: c.Groups.Targets,
			Ranges:  c.Groups.Ranges,
		},
		Seed:          c.Scheduler.Seed,
		Shuffle:       c.Scheduler.Shuffle,
		FillRemaining: c.Scheduler.FillRemaining,
	}
}

// DatabasePath expands a leading ~ in the configured database path.
func (c *Config) DatabasePath() (string, error) {
	p := c.Database.Path
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("finding home directory: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p, nil
}

func parseRuleRole(s string) (domain.Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "all":
		return "", nil
	}
	return domain.ParseRole(s)
}
