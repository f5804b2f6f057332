package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()

	token, err := IssueToken(secret, userID, RoleDoctor, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != userID.String() {
		t.Errorf("subject = %q, want %q", claims.Subject, userID)
	}
	if claims.Role != RoleDoctor {
		t.Errorf("role = %q, want doctor", claims.Role)
	}

	if _, err := ParseToken([]byte("wrong-secret"), token); err == nil {
		t.Error("token accepted with wrong secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := IssueToken(secret, uuid.New(), RoleNurse, -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := ParseToken(secret, token); err == nil {
		t.Error("expired token accepted")
	}
}

func echoWithActorProbe(mw echo.MiddlewareFunc) (*echo.Echo, *ActingUser) {
	e := echo.New()
	var seen ActingUser
	e.GET("/probe", func(c echo.Context) error {
		actor, ok := ActorFromContext(c.Request().Context())
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "no actor")
		}
		seen = actor
		return c.NoContent(http.StatusOK)
	}, mw)
	return e, &seen
}

func TestJWTMiddleware(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()
	token, err := IssueToken(secret, userID, RoleNurse, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	e, seen := echoWithActorProbe(JWTMiddleware(secret))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if seen.ID != userID || seen.Role != RoleNurse {
		t.Errorf("actor = %+v, want %s/nurse", seen, userID)
	}

	// Missing and malformed headers are both rejected.
	for _, header := range []string{"", "Basic abc", "Bearer not-a-token"} {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestDevAuthMiddleware(t *testing.T) {
	e, seen := echoWithActorProbe(DevAuthMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if seen.Role != RoleAdmin {
		t.Errorf("dev actor role = %q, want admin", seen.Role)
	}
}
