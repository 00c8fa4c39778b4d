package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestAuthRoundTrip(t *testing.T) {
	token, err := SignToken(testSecret, TokenClaims{Sub: "alice", Exp: time.Now().Add(time.Hour).Unix()})
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	var gotPrincipal string
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal = PrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/promises", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if gotPrincipal != "alice" {
		t.Fatalf("principal = %q, want alice", gotPrincipal)
	}
}

func TestAuthRejections(t *testing.T) {
	expired, _ := SignToken(testSecret, TokenClaims{Sub: "alice", Exp: time.Now().Add(-time.Hour).Unix()})
	wrongKey, _ := SignToken("other-secret", TokenClaims{Sub: "alice"})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.token"},
		{name: "wrong key", header: "Bearer " + wrongKey},
		{name: "expired", header: "Bearer " + expired},
	}

	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached with invalid credentials")
	}))

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rr.Code)
			}
		})
	}
}
