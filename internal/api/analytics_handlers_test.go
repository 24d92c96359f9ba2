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

func TestAnalyticsEndpoints(t *testing.T) {
	server, _ := testutil.SetupTestServer(t)
	cookie := testutil.GetAuthCookie(t, server, "reader", "password", "user")
	title := testutil.CreateTestTitle(t, server.Store(), "20th Century Boys")

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

	// Fetching a title registers a view.
	rr := do("GET", fmt.Sprintf("/api/titles/%d", title.ID), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Get title: got %d, want 200", rr.Code)
	}

	rr = do("POST", fmt.Sprintf("/api/titles/%d/vote", title.ID), map[string]bool{"liked": true})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("Vote: got %d, want 204: %s", rr.Code, rr.Body.String())
	}
	rr = do("POST", "/api/titles/99999/vote", map[string]bool{"liked": true})
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 voting on unknown title, got %d", rr.Code)
	}

	rr = do("GET", fmt.Sprintf("/api/analytics/titles/%d", title.ID), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Title analytics: got %d, want 200", rr.Code)
	}
	var stats models.TitleAnalytics
	json.NewDecoder(rr.Body).Decode(&stats)
	if stats.TotalViews != 1 || stats.Likes != 1 {
		t.Errorf("Wrong title analytics: %+v", stats)
	}

	// Marking a chapter read shows up in the user stats.
	chapter := testutil.CreateTestChapter(t, server.Store(), title.ID, nil, "1", 5)
	rr = do("PUT", fmt.Sprintf("/api/titles/%d/chapters/%d/read-status", title.ID, chapter.ID),
		map[string]interface{}{"is_read": true, "read_time_ms": 45000})
	if rr.Code != http.StatusOK {
		t.Fatalf("Set read status: got %d, want 200: %s", rr.Code, rr.Body.String())
	}

	rr = do("GET", "/api/analytics/me", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("User stats: got %d, want 200", rr.Code)
	}
	var mine models.UserStats
	json.NewDecoder(rr.Body).Decode(&mine)
	if mine.TotalChaptersRead != 1 || mine.TotalReadTimeMS != 45000 {
		t.Errorf("Wrong user stats: %+v", mine)
	}
}
