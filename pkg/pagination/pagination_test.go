package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", "/?"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return FromContext(c)
}

func TestFromContext(t *testing.T) {
	cases := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", DefaultLimit, 0},
		{"limit=50&offset=10", 50, 10},
		{"limit=0", DefaultLimit, 0},
		{"limit=-5&offset=-3", DefaultLimit, 0},
		{"limit=9999", MaxLimit, 0},
		{"limit=abc&offset=xyz", DefaultLimit, 0},
	}
	for _, tc := range cases {
		got := paramsFor(t, tc.query)
		if got.Limit != tc.wantLimit || got.Offset != tc.wantOffset {
			t.Errorf("FromContext(%q) = %+v, want limit=%d offset=%d", tc.query, got, tc.wantLimit, tc.wantOffset)
		}
	}
}

func TestNewResponseHasMore(t *testing.T) {
	if r := NewResponse(nil, 100, 20, 0); !r.HasMore {
		t.Error("page 1 of 5 should have more")
	}
	if r := NewResponse(nil, 100, 20, 80); r.HasMore {
		t.Error("last page should not have more")
	}
	if r := NewResponse(nil, 0, 20, 0); r.HasMore {
		t.Error("empty set should not have more")
	}
}
