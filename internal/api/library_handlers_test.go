package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/testutil"
)

func TestLibraryEndpoints(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	cookie := testutil.GetAuthCookie(t, server, "reader", "password", "user")
	title := testutil.CreateTestTitle(t, server.Store(), "Oyasumi Punpun")

	do := func(method, url string, body interface{}) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			json.NewEncoder(&buf).Encode(body)
		}
		req, _ := http.NewRequest(method, url, &buf)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		server.Router().ServeHTTP(rr, req)
		return rr
	}

	rr := do("POST", "/api/library", map[string]interface{}{"title_id": title.ID, "status": "READING"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("Add entry: got %d, want 201: %s", rr.Code, rr.Body.String())
	}

	// One entry per title and user.
	rr = do("POST", "/api/library", map[string]interface{}{"title_id": title.ID})
	if rr.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate entry, got %d", rr.Code)
	}

	// Unknown titles cannot be shelved.
	rr = do("POST", "/api/library", map[string]interface{}{"title_id": 99999})
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown title, got %d", rr.Code)
	}

	rr = do("PUT", fmt.Sprintf("/api/library/%d", title.ID),
		map[string]interface{}{"status": "COMPLETED", "rating": 9})
	if rr.Code != http.StatusOK {
		t.Fatalf("Update entry: got %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var entry models.LibraryEntry
	json.NewDecoder(rr.Body).Decode(&entry)
	if entry.Status != models.StatusCompleted || entry.Rating == nil || *entry.Rating != 9 {
		t.Errorf("Wrong entry after update: %+v", entry)
	}

	rr = do("PUT", fmt.Sprintf("/api/library/%d", title.ID),
		map[string]interface{}{"status": "COMPLETED", "rating": 15})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out-of-range rating, got %d", rr.Code)
	}

	rr = do("GET", "/api/library?status=COMPLETED", nil)
	var entries []models.LibraryEntry
	json.NewDecoder(rr.Body).Decode(&entries)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 completed entry, got %d", len(entries))
	}

	rr = do("DELETE", fmt.Sprintf("/api/library/%d", title.ID), nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("Remove entry: got %d, want 204", rr.Code)
	}
	rr = do("DELETE", fmt.Sprintf("/api/library/%d", title.ID), nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 removing a missing entry, got %d", rr.Code)
	}
}
