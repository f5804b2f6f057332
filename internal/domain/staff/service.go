package staff

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/auth"
)

type Service struct {
	repo      Repository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewService(repo Repository, jwtSecret []byte, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type RegisterInput struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

const minPasswordLen = 8

// Register creates a staff account with a bcrypt-hashed password. Route-level
// permissions restrict this to admins.
func (s *Service) Register(ctx context.Context, actor auth.ActingUser, in RegisterInput) (*Member, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.New(apperr.Validation, "a valid email is required")
	}
	if in.FullName == "" {
		return nil, apperr.New(apperr.Validation, "full_name is required")
	}
	role, ok := auth.ParseRole(in.Role)
	if !ok {
		return nil, apperr.New(apperr.Validation, "invalid role: %q", in.Role)
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperr.New(apperr.Validation, "password must be at least %d characters", minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	m := &Member{
		Email:        email,
		FullName:     in.FullName,
		Role:         role,
		Active:       true,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token  string  `json:"token"`
	Member *Member `json:"staff"`
}

// Login verifies credentials and issues a signed token. Bad email and bad
// password produce the same error so the endpoint does not leak which
// accounts exist.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	m, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.New(apperr.Unauthorized, "invalid credentials")
		}
		return nil, err
	}
	if !m.Active {
		return nil, apperr.New(apperr.Unauthorized, "invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(in.Password)) != nil {
		return nil, apperr.New(apperr.Unauthorized, "invalid credentials")
	}

	token, err := auth.IssueToken(s.jwtSecret, m.ID, m.Role, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Member: m}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Member, int, error) {
	return s.repo.List(ctx, limit, offset)
}

type UpdateInput struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
	Password *string `json:"password"`
}

func (s *Service) Update(ctx context.Context, actor auth.ActingUser, id uuid.UUID, in UpdateInput) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		if *in.FullName == "" {
			return nil, apperr.New(apperr.Validation, "full_name cannot be empty")
		}
		m.FullName = *in.FullName
	}
	if in.Role != nil {
		role, ok := auth.ParseRole(*in.Role)
		if !ok {
			return nil, apperr.New(apperr.Validation, "invalid role: %q", *in.Role)
		}
		m.Role = role
	}
	if in.Active != nil {
		m.Active = *in.Active
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, apperr.New(apperr.Validation, "password must be at least %d characters", minPasswordLen)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		m.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
