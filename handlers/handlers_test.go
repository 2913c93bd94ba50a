package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versusfut/config"
	"versusfut/models"
	"versusfut/services"
	"versusfut/testutil"
)

const testToken = "gateway-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := testutil.NewStore(t)
	attendance := services.NewAttendanceService(store)
	squads := services.NewSquadService(store, config.Settings{DefaultPlayersPerTeam: 2}, rand.New(rand.NewSource(1)))
	ledger := services.NewLedgerService(store, rand.New(rand.NewSource(2)))
	reports := services.NewReportService(store, nil, attendance, squads, ledger)
	svc := Services{
		Matches:    services.NewMatchService(store, reports),
		Attendance: attendance,
		Squads:     squads,
		Ledger:     ledger,
		Stats:      services.NewStatsService(store),
		Players:    services.NewPlayerService(store),
		Reports:    reports,
	}
	return NewApp(svc, store, AppOptions{ServiceToken: testToken, AllowedOrigins: []string{"http://localhost:3000"}})
}

// call sends an authenticated request as owner "owner-1" and decodes the JSON reply into out
func call(t *testing.T, app *fiber.App, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("X-User-ID", "owner-1")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestGatewayAuth(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var health map[string]string
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/health", nil, &health))
	assert.Equal(t, "ok", health["status"])
}

func TestOwnerRequiredOnMutations(t *testing.T) {
	app := newTestApp(t)
	raw, _ := json.Marshal(map[string]string{"team_id": "team-1", "match_date": "2024-06-01"})
	req := httptest.NewRequest(http.MethodPost, "/internal-matches", bytes.NewReader(raw))
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// reads do not need an owner
	req = httptest.NewRequest(http.MethodGet, "/teams/team-1/internal-matches", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	app := newTestApp(t)

	var errBody ErrorResponse
	assert.Equal(t, http.StatusBadRequest,
		call(t, app, http.MethodPost, "/internal-matches", map[string]string{"team_id": "team-1"}, &errBody))
	assert.NotEmpty(t, errBody.Error)

	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/internal-matches/missing", nil, &errBody))

	var m models.InternalMatch
	require.Equal(t, http.StatusCreated,
		call(t, app, http.MethodPost, "/internal-matches", map[string]string{"team_id": "team-1", "match_date": "2024-06-01"}, &m))

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/internal-matches/"+m.ID+"/cancel", nil, nil))
	assert.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/internal-matches/"+m.ID+"/start", nil, &errBody))

	other := models.InternalMatch{}
	require.Equal(t, http.StatusCreated,
		call(t, app, http.MethodPost, "/internal-matches", map[string]string{"team_id": "team-1", "match_date": "2024-06-02"}, &other))
	assert.Equal(t, http.StatusUnprocessableEntity,
		call(t, app, http.MethodPost, "/internal-matches/"+other.ID+"/squads/preview", map[string]int{"players_per_team": 2}, &errBody))

	assert.Equal(t, http.StatusServiceUnavailable,
		call(t, app, http.MethodPost, "/internal-matches/"+other.ID+"/report/archive", nil, &errBody))
}

func TestStatusFor(t *testing.T) {
	code, msg := statusFor(fiber.NewError(fiber.StatusTeapot, "short and stout"))
	assert.Equal(t, fiber.StatusTeapot, code)
	assert.Equal(t, "short and stout", msg)

	code, msg = statusFor(services.ErrPersistence)
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", msg)
}

func TestMatchFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)

	var m models.InternalMatch
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/internal-matches",
		map[string]string{"team_id": "team-1", "match_date": "2024-06-01", "match_time": "20:00"}, &m))

	for _, id := range []string{"p1", "p2", "p3"} {
		require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/teams/team-1/players/"+id,
			map[string]string{"name": "Jogador " + id}, nil))
	}
	var added struct {
		Created bool                   `json:"created"`
		Entry   models.AttendanceEntry `json:"entry"`
	}
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/internal-matches/"+m.ID+"/attendance/players",
		map[string]string{"player_id": "p1"}, &added))
	assert.True(t, added.Created)
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/internal-matches/"+m.ID+"/attendance/players",
		map[string]string{"player_id": "p1"}, &added))
	assert.False(t, added.Created)
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/internal-matches/"+m.ID+"/attendance/guests",
		map[string][]string{"names": {"Zé", " ", "Tonho", "Bia"}}, nil))

	var avail struct {
		Players []models.Player `json:"players"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/internal-matches/"+m.ID+"/available-players?q=jogador", nil, &avail))
	assert.Len(t, avail.Players, 2)

	var preview struct {
		Squads []services.SquadDraft `json:"squads"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/internal-matches/"+m.ID+"/squads/preview", nil, &preview))
	require.Len(t, preview.Squads, 2)

	var confirmed struct {
		Squads []models.MatchTeam `json:"squads"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/internal-matches/"+m.ID+"/squads",
		map[string]interface{}{"squads": preview.Squads}, &confirmed))
	require.Len(t, confirmed.Squads, 2)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/internal-matches/"+m.ID+"/start", nil, nil))

	var game models.Game
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/internal-matches/"+m.ID+"/games/random", nil, &game))
	assert.Equal(t, 1, game.GameOrder)
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/games/"+game.ID+"/start", nil, nil))
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/games/"+game.ID+"/result", map[string]interface{}{
		"score_a": 3,
		"score_b": 2,
		"stats":   []map[string]interface{}{{"player_id": "p1", "goals": 2}, {"guest_name": "Zé", "assists": 1}},
	}, nil))

	var done struct {
		Match       models.InternalMatch `json:"match"`
		ForcedGames int64                `json:"forced_games"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/internal-matches/"+m.ID+"/complete", nil, &done))
	assert.Equal(t, models.MatchStatusCompleted, done.Match.Status)
	assert.Zero(t, done.ForcedGames)
	assert.Equal(t, http.StatusConflict,
		call(t, app, http.MethodPost, "/internal-matches/"+m.ID+"/games/random", nil, nil))

	var sum services.Summary
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/internal-matches/"+m.ID+"/summary", nil, &sum))
	assert.Equal(t, 5, sum.TotalGoals)
	require.Len(t, sum.TopScorers, 1)
	assert.Equal(t, "Jogador p1", sum.TopScorers[0].Name)

	var season services.SeasonStats
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/teams/team-1/season-stats?from=2024-01-01", nil, &season))
	assert.Equal(t, 1, season.MatchesPlayed)

	var report services.MatchReport
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/internal-matches/"+m.ID+"/report", nil, &report))
	assert.Len(t, report.Attendance, 4)

	require.Equal(t, http.StatusNoContent, call(t, app, http.MethodDelete, "/internal-matches/"+m.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/internal-matches/"+m.ID, nil, nil))
}
