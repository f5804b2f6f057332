package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/apperr"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const memberCols = `id, email, full_name, role, active, password_hash, created_at`

func (r *repoPG) Create(ctx context.Context, m *Member) error {
	m.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO staff (id, email, full_name, role, active, password_hash, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		m.ID, m.Email, m.FullName, m.Role, m.Active, m.PasswordHash, m.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperr.New(apperr.Conflict, "staff email %s already registered", m.Email)
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	m, err := scanMember(r.pool.QueryRow(ctx, `SELECT `+memberCols+` FROM staff WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "staff member %s not found", id)
	}
	return m, err
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Member, error) {
	m, err := scanMember(r.pool.QueryRow(ctx, `SELECT `+memberCols+` FROM staff WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "staff member %s not found", email)
	}
	return m, err
}

func (r *repoPG) Update(ctx context.Context, m *Member) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE staff SET full_name=$2, role=$3, active=$4, password_hash=$5
		WHERE id = $1`,
		m.ID, m.FullName, m.Role, m.Active, m.PasswordHash,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "staff member %s not found", m.ID)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Member, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+memberCols+` FROM staff ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}
	return members, total, rows.Err()
}

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.Email, &m.FullName, &m.Role, &m.Active, &m.PasswordHash, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
