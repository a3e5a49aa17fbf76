package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unclebandit/crm-backend/internal/controller"
	"github.com/unclebandit/crm-backend/internal/model"
	"github.com/unclebandit/crm-backend/internal/token"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingToken(t *testing.T) {
	mw := &controller.AuthMiddleware{Tokens: token.NewIssuer("secret")}

	req := httptest.NewRequest("GET", "/api/admin/customers", nil)
	w := httptest.NewRecorder()
	mw.Authenticate(okHandler()).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Result().StatusCode)
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	mw := &controller.AuthMiddleware{Tokens: token.NewIssuer("secret")}

	req := httptest.NewRequest("GET", "/api/admin/customers", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	mw.Authenticate(okHandler()).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Result().StatusCode)
	}
}

func TestAuthenticatePassesClaimsThrough(t *testing.T) {
	issuer := token.NewIssuer("secret")
	mw := &controller.AuthMiddleware{Tokens: issuer}

	signed, err := issuer.Issue(&model.User{ID: 9, Username: "wael", Role: model.RoleCustomer})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got *token.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = controller.ClaimsFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/customers/9", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	mw.Authenticate(next).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Result().StatusCode)
	}
	if got == nil || got.UserID != 9 || got.Username != "wael" {
		t.Fatalf("claims not propagated: %+v", got)
	}
}

func TestRequireRoleForbidsWrongRole(t *testing.T) {
	mw := &controller.AuthMiddleware{Tokens: token.NewIssuer("secret")}

	req := httptest.NewRequest("GET", "/api/admin/customers", nil)
	claims := &token.Claims{UserID: 9, Username: "wael", Role: model.RoleCustomer}
	req = req.WithContext(controller.WithClaims(req.Context(), claims))

	w := httptest.NewRecorder()
	mw.RequireRole(model.RoleAdmin)(okHandler()).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Result().StatusCode)
	}
}

func TestRequireRoleAllowsMatch(t *testing.T) {
	mw := &controller.AuthMiddleware{Tokens: token.NewIssuer("secret")}

	req := httptest.NewRequest("GET", "/api/admin/customers", nil)
	claims := &token.Claims{UserID: 1, Username: "admin", Role: model.RoleAdmin}
	req = req.WithContext(controller.WithClaims(req.Context(), claims))

	w := httptest.NewRecorder()
	mw.RequireRole(model.RoleAdmin)(okHandler()).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Result().StatusCode)
	}
}
