package lab

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

const orderCols = `id, visit_id, test_name, category, requested_by, priority, status,
	ordered_at, completed_at, result, notes`

func (r *repoPG) Create(ctx context.Context, o *Order) error {
	o.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lab_order (
			id, visit_id, test_name, category, requested_by, priority, status,
			ordered_at, completed_at, result, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		o.ID, o.VisitID, o.TestName, o.Category, o.RequestedBy, o.Priority, o.Status,
		o.OrderedAt, o.CompletedAt, o.Result, o.Notes,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderCols+` FROM lab_order WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "lab order %s not found", id)
	}
	return o, err
}

func (r *repoPG) Update(ctx context.Context, o *Order) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE lab_order SET
			test_name=$2, category=$3, priority=$4, status=$5,
			completed_at=$6, result=$7, notes=$8
		WHERE id = $1`,
		o.ID, o.TestName, o.Category, o.Priority, o.Status,
		o.CompletedAt, o.Result, o.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "lab order %s not found", o.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lab_order WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "lab order %s not found", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Order, int, error) {
	where, args := filterClause(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lab_order`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataArgs := append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM lab_order%s ORDER BY ordered_at DESC LIMIT $%d OFFSET $%d`,
		orderCols, where, len(args)+1, len(args)+2), dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func filterClause(f Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.VisitID != nil {
		args = append(args, *f.VisitID)
		conds = append(conds, fmt.Sprintf("visit_id = $%d", len(args)))
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

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.VisitID, &o.TestName, &o.Category, &o.RequestedBy, &o.Priority, &o.Status,
		&o.OrderedAt, &o.CompletedAt, &o.Result, &o.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
