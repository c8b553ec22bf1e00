package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/rueda/internal/db"
	"github.com/alexanderramin/rueda/internal/domain"
)

// SQLiteRunRepo implements RunRepo using a SQLite database. Create issues
// several inserts; wrap it in a UnitOfWork to store a run atomically.
type SQLiteRunRepo struct {
	db db.DBTX
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo.
func NewSQLiteRunRepo(conn db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: conn}
}

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.Run) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO runs
		(id, event_name, seed, fingerprint, preferences_total, preferences_fulfilled, config_yaml, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.EventName,
		run.Seed,
		run.Fingerprint,
		run.PreferencesTotal,
		run.PreferencesFulfilled,
		run.ConfigYAML,
		formatTime(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, s := range run.Slots {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO run_slots (run_id, slot_idx, start_at, end_at) VALUES (?, ?, ?, ?)`,
			run.ID, s.Index, formatTime(s.Start), formatTime(s.End))
		if err != nil {
			return fmt.Errorf("inserting slot %d: %w", s.Index, err)
		}
	}

	if run.Schedule != nil {
		for _, m := range run.Schedule.All() {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO run_meetings (run_id, meeting_id, slot_idx, requester, phase) VALUES (?, ?, ?, ?, ?)`,
				run.ID, m.ID, m.Slot, m.Requester, string(m.Phase))
			if err != nil {
				return fmt.Errorf("inserting meeting %d: %w", m.ID, err)
			}
			for pos, p := range m.Providers {
				_, err := r.db.ExecContext(ctx,
					`INSERT INTO run_meeting_providers (run_id, meeting_id, position, provider) VALUES (?, ?, ?, ?)`,
					run.ID, m.ID, pos, p)
				if err != nil {
					return fmt.Errorf("inserting provider of meeting %d: %w", m.ID, err)
				}
			}
		}
	}

	for seq, s := range run.Shortfalls {
		_, err := r.db.ExecContext(ctx, `INSERT INTO run_shortfalls
			(run_id, seq, kind, role, participant_id, requester_id, provider_id, slot_idx, reason)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, seq, string(s.Kind), string(s.Role), s.ParticipantID,
			s.RequesterID, s.ProviderID, s.Slot, s.Reason)
		if err != nil {
			return fmt.Errorf("inserting shortfall %d: %w", seq, err)
		}
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	fullID, err := r.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, `SELECT id, event_name, seed, fingerprint,
		preferences_total, preferences_fulfilled, config_yaml, created_at
		FROM runs WHERE id = ?`, fullID)
	run, err := scanRun(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if run.Slots, err = r.loadSlots(ctx, run.ID); err != nil {
		return nil, err
	}
	if run.Schedule, err = r.loadSchedule(ctx, run.ID, len(run.Slots)); err != nil {
		return nil, err
	}
	run.MeetingCount = run.Schedule.Len()
	if run.Shortfalls, err = r.loadShortfalls(ctx, run.ID); err != nil {
		return nil, err
	}
	return run, nil
}

func (r *SQLiteRunRepo) List(ctx context.Context, limit int) ([]*domain.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `SELECT r.id, r.event_name, r.seed, r.fingerprint,
		r.preferences_total, r.preferences_fulfilled, '', r.created_at,
		(SELECT COUNT(*) FROM run_meetings m WHERE m.run_id = r.id)
		FROM runs r ORDER BY r.created_at DESC, r.id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.Run
	for rows.Next() {
		var count int
		run, err := scanRun(func(dest ...any) error {
			return rows.Scan(append(dest, &count)...)
		})
		if err != nil {
			return nil, err
		}
		run.MeetingCount = count
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

// resolveID expands a display prefix to the full run ID.
func (r *SQLiteRunRepo) resolveID(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("run id: %w", ErrNotFound)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		prefix, escapeLike(prefix)+"%")
	if err != nil {
		return "", fmt.Errorf("resolving run id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scanning run id: %w", err)
		}
		if id == prefix {
			return id, nil
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating run ids: %w", err)
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("run %s: %w", prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	}
	return "", fmt.Errorf("run %s: %w", prefix, ErrAmbiguousID)
}

func (r *SQLiteRunRepo) loadSlots(ctx context.Context, runID string) ([]domain.Slot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT slot_idx, start_at, end_at FROM run_slots WHERE run_id = ? ORDER BY slot_idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.Slot
	for rows.Next() {
		var s domain.Slot
		var start, end string
		if err := rows.Scan(&s.Index, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		if s.Start, err = parseTime("start_at", start); err != nil {
			return nil, err
		}
		if s.End, err = parseTime("end_at", end); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}
	return slots, nil
}

// loadSchedule rebuilds the schedule in commit order so meeting IDs and the
// per-slot order match the stored run.
func (r *SQLiteRunRepo) loadSchedule(ctx context.Context, runID string, slotCount int) (*domain.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT m.meeting_id, m.slot_idx, m.requester, m.phase, p.provider
		FROM run_meetings m
		JOIN run_meeting_providers p ON p.run_id = m.run_id AND p.meeting_id = m.meeting_id
		WHERE m.run_id = ?
		ORDER BY m.meeting_id, p.position`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*domain.Meeting
	for rows.Next() {
		var id, slot int
		var requester, phase, provider string
		if err := rows.Scan(&id, &slot, &requester, &phase, &provider); err != nil {
			return nil, fmt.Errorf("scanning meeting: %w", err)
		}
		if n := len(meetings); n > 0 && meetings[n-1].ID == id {
			meetings[n-1].Providers = append(meetings[n-1].Providers, provider)
			continue
		}
		meetings = append(meetings, &domain.Meeting{
			ID:        id,
			Slot:      slot,
			Requester: requester,
			Providers: []string{provider},
			Phase:     domain.Phase(phase),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meetings: %w", err)
	}

	schedule := domain.NewSchedule(slotCount)
	for _, m := range meetings {
		if err := schedule.Restore(*m); err != nil {
			return nil, fmt.Errorf("restoring schedule: %w", err)
		}
	}
	return schedule, nil
}

func (r *SQLiteRunRepo) loadShortfalls(ctx context.Context, runID string) ([]domain.Shortfall, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT kind, role, participant_id, requester_id, provider_id, slot_idx, reason
		FROM run_shortfalls WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading shortfalls: %w", err)
	}
	defer rows.Close()

	var out []domain.Shortfall
	for rows.Next() {
		var s domain.Shortfall
		var kind, role string
		if err := rows.Scan(&kind, &role, &s.ParticipantID, &s.RequesterID, &s.ProviderID, &s.Slot, &s.Reason); err != nil {
			return nil, fmt.Errorf("scanning shortfall: %w", err)
		}
		s.Kind = domain.ShortfallKind(kind)
		s.Role = domain.Role(role)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shortfalls: %w", err)
	}
	return out, nil
}

// scanRun reads the run columns in SELECT order through scan, which is either
// (*sql.Row).Scan or a wrapper around (*sql.Rows).Scan.
func scanRun(scan func(dest ...any) error) (*domain.Run, error) {
	var run domain.Run
	var createdAt string
	err := scan(&run.ID, &run.EventName, &run.Seed, &run.Fingerprint,
		&run.PreferencesTotal, &run.PreferencesFulfilled, &run.ConfigYAML, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if run.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &run, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
