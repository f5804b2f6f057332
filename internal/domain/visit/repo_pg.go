package visit

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

const visitCols = `id, patient_id, visit_type, status, start_time, end_time,
	reason_for_visit, referring_doctor, visit_notes`

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	v.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO visit (
			id, patient_id, visit_type, status, start_time, end_time,
			reason_for_visit, referring_doctor, visit_notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		v.ID, v.PatientID, v.VisitType, v.Status, v.StartTime, v.EndTime,
		v.ReasonForVisit, v.ReferringDoctor, v.Notes,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Visit, error) {
	v, err := scanVisit(r.pool.QueryRow(ctx, `SELECT `+visitCols+` FROM visit WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "visit %s not found", id)
	}
	return v, err
}

func (r *repoPG) Update(ctx context.Context, v *Visit) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE visit SET
			visit_type=$2, status=$3, start_time=$4, end_time=$5,
			reason_for_visit=$6, referring_doctor=$7, visit_notes=$8
		WHERE id = $1`,
		v.ID, v.VisitType, v.Status, v.StartTime, v.EndTime,
		v.ReasonForVisit, v.ReferringDoctor, v.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "visit %s not found", v.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM visit WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "visit %s not found", id)
	}
	return nil
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM visit WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repoPG) IDsByPatient(ctx context.Context, patientID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM visit WHERE patient_id = $1`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Visit, int, error) {
	where, args := filterClause(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM visit`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataArgs := append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM visit%s ORDER BY start_time DESC LIMIT $%d OFFSET $%d`,
		visitCols, where, len(args)+1, len(args)+2), dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var visits []*Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, 0, err
		}
		visits = append(visits, v)
	}
	return visits, total, rows.Err()
}

func filterClause(f Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.PatientID != nil {
		args = append(args, *f.PatientID)
		conds = append(conds, fmt.Sprintf("patient_id = $%d", len(args)))
	}
	if f.VisitType != "" {
		args = append(args, f.VisitType)
		conds = append(conds, fmt.Sprintf("visit_type = $%d", len(args)))
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

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(
		&v.ID, &v.PatientID, &v.VisitType, &v.Status, &v.StartTime, &v.EndTime,
		&v.ReasonForVisit, &v.ReferringDoctor, &v.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
