package patient

import (
	"context"
	"errors"
	"fmt"

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

const patientCols = `id, mrn, first_name, last_name, date_of_birth, gender, blood_group,
	phone, email, address, emergency_contact_name, emergency_contact_phone,
	mode_of_payment, insurance, notes, created_by, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	// MRN comes from patient_mrn_seq so concurrent registrations never collide.
	return r.pool.QueryRow(ctx, `
		INSERT INTO patient (
			id, mrn, first_name, last_name, date_of_birth, gender, blood_group,
			phone, email, address, emergency_contact_name, emergency_contact_phone,
			mode_of_payment, insurance, notes, created_by, created_at, updated_at
		) VALUES (
			$1, 'MRN' || lpad(nextval('patient_mrn_seq')::text, 6, '0'),
			$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17
		) RETURNING mrn`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Gender, p.BloodGroup,
		p.Phone, p.Email, p.Address, p.EmergencyContactName, p.EmergencyContactPhone,
		p.PaymentMode, p.Insurance, p.Notes, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.MRN)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "patient %s not found", id)
	}
	return p, err
}

func (r *repoPG) GetByMRN(ctx context.Context, mrn string) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE mrn = $1`, mrn))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "patient with MRN %s not found", mrn)
	}
	return p, err
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patient SET
			first_name=$2, last_name=$3, date_of_birth=$4, gender=$5, blood_group=$6,
			phone=$7, email=$8, address=$9, emergency_contact_name=$10,
			emergency_contact_phone=$11, mode_of_payment=$12, insurance=$13,
			notes=$14, updated_at=$15
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Gender, p.BloodGroup,
		p.Phone, p.Email, p.Address, p.EmergencyContactName, p.EmergencyContactPhone,
		p.PaymentMode, p.Insurance, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "patient %s not found", p.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "patient %s not found", id)
	}
	return nil
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM patient WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repoPG) List(ctx context.Context, search string, limit, offset int) ([]*Patient, int, error) {
	where := ""
	var args []interface{}
	if search != "" {
		args = append(args, "%"+search+"%")
		where = ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR mrn ILIKE $1`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patient`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataArgs := append(args, limit, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM patient%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		patientCols, where, len(args)+1, len(args)+2), dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.MRN, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Gender, &p.BloodGroup,
		&p.Phone, &p.Email, &p.Address, &p.EmergencyContactName, &p.EmergencyContactPhone,
		&p.PaymentMode, &p.Insurance, &p.Notes, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
