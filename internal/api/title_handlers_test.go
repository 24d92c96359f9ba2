package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/testutil"
)

func TestSearchTitlesEndpoint(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	cookie := testutil.GetAuthCookie(t, server, "reader", "password", "user")

	testutil.CreateTestTitle(t, server.Store(), "Berserk")
	testutil.CreateTestTitle(t, server.Store(), "Beastars")
	testutil.CreateTestTitle(t, server.Store(), "Uzumaki")

	get := func(query string) (*httptest.ResponseRecorder, models.Page[models.TitleSummary]) {
		t.Helper()
		req, _ := http.NewRequest("GET", "/api/titles"+query, nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		server.Router().ServeHTTP(rr, req)
		var page models.Page[models.TitleSummary]
		json.NewDecoder(rr.Body).Decode(&page)
		return rr, page
	}

	rr, page := get("?search=be&sort=NAME_ASC")
	if rr.Code != http.StatusOK {
		t.Fatalf("Search: got %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if page.TotalElements != 2 || len(page.Content) != 2 {
		t.Fatalf("Expected 2 matches, got %+v", page)
	}
	if page.Content[0].Name != "Beastars" || page.Content[1].Name != "Berserk" {
		t.Errorf("Wrong order: %+v", page.Content)
	}

	rr, page = get("?page=0&size=2")
	if page.TotalPages != 2 || !page.First || page.Last {
		t.Errorf("Wrong envelope for first page: %+v", page)
	}

	// Unknown enum values are rejected.
	rr, _ = get("?type=webtoon")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad type, got %d", rr.Code)
	}

	// Unauthenticated requests are turned away.
	req, _ := http.NewRequest("GET", "/api/titles", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without session, got %d", rec.Code)
	}
}

func TestTitleAdminCRUD(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	admin := testutil.GetAuthCookie(t, server, "admin", "password", "admin")
	user := testutil.GetAuthCookie(t, server, "reader", "password", "user")

	body, _ := json.Marshal(map[string]interface{}{
		"name": "Chainsaw Man", "type": "MANGA", "content_rating": "SIXTEEN_PLUS",
	})

	// Non-admins cannot create titles.
	req, _ := http.NewRequest("POST", "/api/admin/titles", bytes.NewReader(body))
	req.AddCookie(user)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for non-admin create, got %d", rr.Code)
	}

	req, _ = http.NewRequest("POST", "/api/admin/titles", bytes.NewReader(body))
	req.AddCookie(admin)
	rr = httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Create title: got %d, want 201: %s", rr.Code, rr.Body.String())
	}
	var created models.Title
	json.NewDecoder(rr.Body).Decode(&created)
	if created.Slug != "chainsaw-man" {
		t.Errorf("Expected generated slug, got %q", created.Slug)
	}

	// Anyone logged in can read it back by slug.
	req, _ = http.NewRequest("GET", "/api/titles/slug/chainsaw-man", nil)
	req.AddCookie(user)
	rr = httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Get by slug: got %d, want 200", rr.Code)
	}

	// Duplicate names conflict.
	req, _ = http.NewRequest("POST", "/api/admin/titles", bytes.NewReader(body))
	req.AddCookie(admin)
	rr = httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate name, got %d", rr.Code)
	}
}
