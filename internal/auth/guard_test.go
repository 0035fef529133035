package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"rentwheels/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
}

func decodeErrorCode(t *testing.T, body io.Reader) string {
	t.Helper()
	var resp struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp.Code
}

func TestRequireOwnerNoIdentity(t *testing.T) {
	called := false
	handle := RequireOwner("email", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/cars/owner/alice@example.com", nil)
	rec := httptest.NewRecorder()

	handle(rec, req, httprouter.Params{{Key: "email", Value: "alice@example.com"}})

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec.Body); code != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED code, got %q", code)
	}
	if called {
		t.Error("handler should not be invoked without identity")
	}
}

func TestRequireOwnerMismatch(t *testing.T) {
	called := false
	handle := RequireOwner("email", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/cars/owner/bob@example.com", nil)
	req = req.WithContext(ContextWithIdentity(req.Context(), "alice@example.com"))
	rec := httptest.NewRecorder()

	handle(rec, req, httprouter.Params{{Key: "email", Value: "bob@example.com"}})

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec.Body); code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN code, got %q", code)
	}
	if called {
		t.Error("handler should not be invoked on identity mismatch")
	}
}

func TestRequireOwnerMatch(t *testing.T) {
	called := false
	handle := RequireOwner("email", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/cars/owner/alice@example.com", nil)
	req = req.WithContext(ContextWithIdentity(req.Context(), "alice@example.com"))
	rec := httptest.NewRecorder()

	handle(rec, req, httprouter.Params{{Key: "email", Value: "Alice@Example.com"}})

	if !called {
		t.Error("handler should be invoked when identity matches")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticateCookieThenBearer(t *testing.T) {
	verifier := NewTokenVerifier("test-secret", time.Hour)

	token, err := verifier.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	cases := []struct {
		name    string
		prepare func(r *http.Request)
		want    string
		wantOK  bool
	}{
		{
			name: "cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
			},
			want:   "alice@example.com",
			wantOK: true,
		},
		{
			name: "bearer header",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token)
			},
			want:   "alice@example.com",
			wantOK: true,
		},
		{
			name: "invalid credential continues anonymously",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer garbage")
			},
			wantOK: false,
		},
		{
			name:    "no credential",
			prepare: func(r *http.Request) {},
			wantOK:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotEmail string
			var gotOK bool
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotEmail, gotOK = IdentityFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.prepare(req)
			rec := httptest.NewRecorder()

			Authenticate(verifier, testLogger())(inner).ServeHTTP(rec, req)

			if gotOK != tc.wantOK {
				t.Fatalf("identity present = %v, want %v", gotOK, tc.wantOK)
			}
			if tc.wantOK && gotEmail != tc.want {
				t.Errorf("identity = %q, want %q", gotEmail, tc.want)
			}
		})
	}
}
