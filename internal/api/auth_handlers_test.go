package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/testutil"
)

func TestLoginAndLogout(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	cookie := testutil.GetAuthCookie(t, server, "reader", "hunter2", "user")

	// Login echoes the account without leaking the password hash.
	body, _ := json.Marshal(map[string]string{"username": "reader", "password": "hunter2"})
	req, _ := http.NewRequest("POST", "/api/users/login", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Login: got %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var user models.User
	json.NewDecoder(rr.Body).Decode(&user)
	if user.Username != "reader" || user.Role != "user" {
		t.Errorf("Wrong user in login response: %+v", user)
	}
	if strings.Contains(rr.Body.String(), "password") {
		t.Error("Login response leaks password material")
	}

	// Wrong password and unknown user are indistinguishable.
	for _, payload := range []map[string]string{
		{"username": "reader", "password": "wrong"},
		{"username": "nobody", "password": "hunter2"},
	} {
		body, _ := json.Marshal(payload)
		req, _ = http.NewRequest("POST", "/api/users/login", bytes.NewBuffer(body))
		rr = httptest.NewRecorder()
		server.Router().ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401 for %v, got %d", payload, rr.Code)
		}
	}

	req, _ = http.NewRequest("POST", "/api/users/logout", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("Logout: got %d, want 204", rr.Code)
	}

	// The session is gone server-side.
	req, _ = http.NewRequest("GET", "/api/users/me", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 after logout, got %d", rr.Code)
	}
}
