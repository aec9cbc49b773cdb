package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/forgeledger/forgeledger/internal/api"
	"github.com/forgeledger/forgeledger/internal/app/ledger"
	"github.com/forgeledger/forgeledger/internal/infra/sqlite"
)

// testServer spins up the API over a temporary ledger.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sqlite.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc, err := ledger.NewService(db, time.UTC, zap.NewNop())
	require.NoError(t, err)

	ts := httptest.NewServer(api.NewServer(svc, nil, zap.NewNop()).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestAddPointsEndpoint(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/api/ledger/points", map[string]interface{}{
		"amount": 120,
		"reason": "Completed: HTTP basics",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res struct {
		XP        int64 `json:"xp"`
		Level     int   `json:"level"`
		LeveledUp bool  `json:"leveled_up"`
		Entry     struct {
			Title string `json:"title"`
		} `json:"entry"`
	}
	decode(t, resp, &res)
	assert.Equal(t, int64(120), res.XP)
	assert.Equal(t, 2, res.Level)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, "+120 XP", res.Entry.Title)

	// Summary reflects the mutation.
	resp2, err := http.Get(ts.URL + "/api/ledger/summary")
	require.NoError(t, err)
	var sum struct {
		XP          int64   `json:"xp"`
		Level       int     `json:"level"`
		ProgressPct float64 `json:"progress_pct"`
	}
	decode(t, resp2, &sum)
	assert.Equal(t, int64(120), sum.XP)
	assert.Equal(t, 2, sum.Level)
	assert.GreaterOrEqual(t, sum.ProgressPct, 0.0)
	assert.LessOrEqual(t, sum.ProgressPct, 100.0)
}

func TestAddPointsEndpoint_RejectsNonPositive(t *testing.T) {
	ts := testServer(t)

	for _, amount := range []int{0, -10} {
		resp := postJSON(t, ts.URL+"/api/ledger/points", map[string]interface{}{
			"amount": amount,
			"reason": "bogus",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "amount %d", amount)
		resp.Body.Close()
	}
}

func TestCheckInEndpoint(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/api/ledger/checkin", map[string]interface{}{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res struct {
		Advanced bool `json:"advanced"`
		Streak   struct {
			CurrentDays int `json:"current_days"`
		} `json:"streak"`
	}
	decode(t, resp, &res)
	assert.True(t, res.Advanced)
	assert.Equal(t, 1, res.Streak.CurrentDays)

	// Second check-in the same day is a no-op.
	resp = postJSON(t, ts.URL+"/api/ledger/checkin", map[string]interface{}{})
	decode(t, resp, &res)
	assert.False(t, res.Advanced)
	assert.Equal(t, 1, res.Streak.CurrentDays)
}

func TestEarnBadgeEndpoint_Idempotent(t *testing.T) {
	ts := testServer(t)

	body := map[string]interface{}{
		"id":          "beta-tester",
		"name":        "Beta Tester",
		"description": "Joined during the beta.",
		"category":    "community",
	}

	var res struct {
		Earned bool `json:"earned"`
	}
	resp := postJSON(t, ts.URL+"/api/ledger/badges", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &res)
	assert.True(t, res.Earned)

	resp = postJSON(t, ts.URL+"/api/ledger/badges", body)
	decode(t, resp, &res)
	assert.False(t, res.Earned)

	// Missing ID is a client error.
	resp = postJSON(t, ts.URL+"/api/ledger/badges", map[string]interface{}{"name": "Nameless"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAchievementEndpoints(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/api/ledger/achievements", map[string]interface{}{
		"title":    "Helped a classmate",
		"points":   15,
		"category": "community",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp2, err := http.Get(ts.URL + "/api/ledger/achievements?limit=10")
	require.NoError(t, err)
	var list struct {
		Achievements []struct {
			Title  string `json:"title"`
			Points int64  `json:"points"`
		} `json:"achievements"`
	}
	decode(t, resp2, &list)
	require.Len(t, list.Achievements, 1)
	assert.Equal(t, "Helped a classmate", list.Achievements[0].Title)

	// Title is required.
	resp3 := postJSON(t, ts.URL+"/api/ledger/achievements", map[string]interface{}{"points": 5})
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
	resp3.Body.Close()
}

func TestEventFlow(t *testing.T) {
	ts := testServer(t)

	// Force a level-up so an event is queued.
	resp := postJSON(t, ts.URL+"/api/ledger/points", map[string]interface{}{
		"amount": 150, "reason": "level up",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp2, err := http.Get(ts.URL + "/api/ledger/events")
	require.NoError(t, err)
	var list struct {
		Events []struct {
			ID   int64  `json:"id"`
			Type string `json:"type"`
		} `json:"events"`
	}
	decode(t, resp2, &list)
	require.NotEmpty(t, list.Events)

	ack := fmt.Sprintf("%s/api/ledger/events/%d/shown", ts.URL, list.Events[0].ID)
	resp3 := postJSON(t, ack, nil)
	assert.Equal(t, http.StatusNoContent, resp3.StatusCode)
	resp3.Body.Close()

	// Unknown event is a 404.
	resp4 := postJSON(t, ts.URL+"/api/ledger/events/99999/shown", nil)
	assert.Equal(t, http.StatusNotFound, resp4.StatusCode)
	resp4.Body.Close()
}

func TestStatsEndpoints(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/api/ledger/points", map[string]interface{}{
		"amount": 40, "reason": "lesson",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp2, err := http.Get(ts.URL + "/api/ledger/stats/weekly")
	require.NoError(t, err)
	var week struct {
		Days []struct {
			Date string `json:"date"`
			XP   int64  `json:"xp"`
		} `json:"days"`
	}
	decode(t, resp2, &week)
	require.Len(t, week.Days, 7)
	assert.Equal(t, int64(40), week.Days[6].XP, "today's XP lands in the last bucket")

	resp3, err := http.Get(ts.URL + "/api/ledger/stats/categories")
	require.NoError(t, err)
	var cats struct {
		Categories map[string]int64 `json:"categories"`
	}
	decode(t, resp3, &cats)
	assert.Len(t, cats.Categories, 4)
	assert.Equal(t, int64(40), cats.Categories["lesson"])
}

func TestHealthz(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
