package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/apperr"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const entryCols = `id, visit_id, department, assigned_to, priority, status,
	arrival_time, start_time, end_time, notes`

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO queue_entry (
			id, visit_id, department, assigned_to, priority, status,
			arrival_time, start_time, end_time, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		e.ID, e.VisitID, e.Department, e.AssignedTo, e.Priority, e.Status,
		e.ArrivalTime, e.StartTime, e.EndTime, e.Notes,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, `SELECT `+entryCols+` FROM queue_entry WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "queue entry %s not found", id)
	}
	return e, err
}

// Update writes the mutable columns only; visit_id and arrival_time are never
// part of the statement.
func (r *repoPG) Update(ctx context.Context, e *Entry) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE queue_entry SET
			department=$2, assigned_to=$3, priority=$4, status=$5,
			start_time=$6, end_time=$7, notes=$8
		WHERE id = $1`,
		e.ID, e.Department, e.AssignedTo, e.Priority, e.Status,
		e.StartTime, e.EndTime, e.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "queue entry %s not found", e.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM queue_entry WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "queue entry %s not found", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Entry, int, error) {
	where, args := filterClause(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM queue_entry`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataArgs := append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM queue_entry%s ORDER BY arrival_time DESC LIMIT $%d OFFSET $%d`,
		entryCols, where, len(args)+1, len(args)+2), dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *repoPG) ListAll(ctx context.Context, f Filter) ([]*Entry, error) {
	where, args := filterClause(f)
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryCols+` FROM queue_entry`+where+` ORDER BY arrival_time DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *repoPG) DeleteByVisit(ctx context.Context, visitID uuid.UUID) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM queue_entry WHERE visit_id = $1`, visitID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// filterClause builds the WHERE clause for a filter. Enum values are already
// canonical, so plain equality is sufficient.
func filterClause(f Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.VisitID != nil {
		args = append(args, *f.VisitID)
		conds = append(conds, fmt.Sprintf("visit_id = $%d", len(args)))
	}
	if f.Department != "" {
		args = append(args, f.Department)
		conds = append(conds, fmt.Sprintf("department = $%d", len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(
		&e.ID, &e.VisitID, &e.Department, &e.AssignedTo, &e.Priority, &e.Status,
		&e.ArrivalTime, &e.StartTime, &e.EndTime, &e.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEntries(rows pgx.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		var e Entry
		err := rows.Scan(
			&e.ID, &e.VisitID, &e.Department, &e.AssignedTo, &e.Priority, &e.Status,
			&e.ArrivalTime, &e.StartTime, &e.EndTime, &e.Notes,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
