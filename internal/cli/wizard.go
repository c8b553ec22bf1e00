package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/rueda/internal/cli/formatter"
	"github.com/alexanderramin/rueda/internal/config"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ruedaHuhTheme returns a huh theme using the formatter palette.
func ruedaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardValues holds the init form answers as strings, the way huh inputs
// bind them.
type wizardValues struct {
	Name          string
	Date          string
	Start         string
	End           string
	SlotMinutes   string
	CoverageSlots string
	MaxGroupSize  string
	MaxMeetings   string
	Preferences   string
	FillRemaining bool
}

func wizardDefaults(cfg *config.Config) *wizardValues {
	return &wizardValues{
		Name:          cfg.Event.Name,
		Date:          cfg.Calendar.Date,
		Start:         cfg.Calendar.Start,
		End:           cfg.Calendar.End,
		SlotMinutes:   strconv.Itoa(cfg.Calendar.SlotMinutes),
		CoverageSlots: strconv.Itoa(cfg.Scheduler.CoverageSlots),
		MaxGroupSize:  strconv.Itoa(cfg.Groups.MaxSize),
		MaxMeetings:   strconv.Itoa(cfg.Capacity.MaxMeetingsPerProvider),
		Preferences:   cfg.Inputs.Preferences,
		FillRemaining: cfg.Scheduler.FillRemaining,
	}
}

// newInitForm builds the event wizard bound to v.
func newInitForm(v *wizardValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Event name").
				Value(&v.Name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, leave empty to decide later").
				Value(&v.Date).
				Validate(validateDate),
			huh.NewInput().
				Title("First meeting starts at").
				Placeholder("08:30").
				Value(&v.Start).
				Validate(validateClock),
			huh.NewInput().
				Title("Last meeting ends at").
				Placeholder("13:00").
				Value(&v.End).
				Validate(validateClock),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Slot length (minutes)").
				Value(&v.SlotMinutes).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Coverage window (slots)").
				Description("Every buyer should get a meeting within this many slots").
				Value(&v.CoverageSlots).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Sellers per meeting (max)").
				Value(&v.MaxGroupSize).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Meetings per seller (max)").
				Value(&v.MaxMeetings).
				Validate(validatePositiveInt),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Preference CSV").
				Description("provider,requester rows; relative to the config file").
				Value(&v.Preferences),
			huh.NewConfirm().
				Title("Fill idle slots with extra meetings?").
				Value(&v.FillRemaining),
		),
	).WithTheme(ruedaHuhTheme()).WithShowHelp(false)
}

// apply copies validated answers into cfg.
func (v *wizardValues) apply(cfg *config.Config) error {
	for _, check := range []struct {
		field string
		err   error
	}{
		{"name", validateRequired(v.Name)},
		{"date", validateDate(v.Date)},
		{"start", validateClock(v.Start)},
		{"end", validateClock(v.End)},
		{"slot minutes", validatePositiveInt(v.SlotMinutes)},
		{"coverage slots", validateNonNegativeInt(v.CoverageSlots)},
		{"group size", validatePositiveInt(v.MaxGroupSize)},
		{"meetings per seller", validatePositiveInt(v.MaxMeetings)},
	} {
		if check.err != nil {
			return fmt.Errorf("%s: %w", check.field, check.err)
		}
	}

	cfg.Event.Name = v.Name
	cfg.Calendar.Date = v.Date
	cfg.Calendar.Start = v.Start
	cfg.Calendar.End = v.End
	cfg.Calendar.SlotMinutes = parsePositiveInt(v.SlotMinutes, cfg.Calendar.SlotMinutes)
	cfg.Scheduler.CoverageSlots = parseNonNegativeInt(v.CoverageSlots, cfg.Scheduler.CoverageSlots)
	cfg.Groups.MaxSize = parsePositiveInt(v.MaxGroupSize, cfg.Groups.MaxSize)
	cfg.Capacity.MaxMeetingsPerProvider = parsePositiveInt(v.MaxMeetings, cfg.Capacity.MaxMeetingsPerProvider)
	cfg.Inputs.Preferences = v.Preferences
	cfg.Scheduler.FillRemaining = v.FillRemaining
	return nil
}

// parsePositiveInt parses s, returning fallback when s is empty or not a
// positive integer.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func parseNonNegativeInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func validateRequired(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

func validateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateClock(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("use HH:MM")
	}
	return nil
}
