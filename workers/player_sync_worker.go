// workers/player_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"versusfut/models"
	"versusfut/utils"
)

// RemotePlayer matches one entry of the player directory's change feed
type RemotePlayer struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"team_id"`
	Name        string    `json:"name"`
	Nickname    *string   `json:"nickname,omitempty"`
	Position    *string   `json:"position,omitempty"`
	ShirtNumber *int      `json:"shirt_number,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PlayerChangesResponse struct {
	Players []RemotePlayer `json:"players"`
}

// PlayerMirror is the local side of the sync; services.PlayerService implements it
type PlayerMirror interface {
	Mirror(ctx context.Context, p *models.Player) error
	LastSynced(ctx context.Context) (time.Time, error)
}

type PlayerSyncWorker struct {
	mirror       PlayerMirror
	interval     time.Duration
	baseURL      string
	serviceToken string
	httpClient   *http.Client
}

func NewPlayerSyncWorker(mirror PlayerMirror, baseURL, serviceToken string, interval time.Duration) *PlayerSyncWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PlayerSyncWorker{
		mirror:       mirror,
		interval:     interval,
		baseURL:      baseURL,
		serviceToken: serviceToken,
		httpClient:   utils.NewServiceClient(30 * time.Second),
	}
}

func (w *PlayerSyncWorker) Start(ctx context.Context) {
	log.Info().Str("url", w.baseURL).Dur("interval", w.interval).Msg("starting player sync worker")
	go w.run(ctx)
}

func (w *PlayerSyncWorker) run(ctx context.Context) {
	// Initial sync from the beginning of time
	if _, err := w.SyncOnce(ctx, time.Time{}); err != nil {
		log.Warn().Err(err).Msg("[SYNC] initial player sync failed")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			since, err := w.mirror.LastSynced(ctx)
			if err != nil {
				log.Error().Err(err).Msg("[SYNC] reading last sync time failed")
				continue
			}
			if _, err := w.SyncOnce(ctx, since); err != nil {
				log.Error().Err(err).Msg("[SYNC] player sync batch failed")
			}
		case <-ctx.Done():
			log.Info().Msg("player sync worker stopped")
			return
		}
	}
}

// SyncOnce pulls players changed since the given time and mirrors them locally.
// It returns how many were stored; individual upsert failures are logged and skipped.
func (w *PlayerSyncWorker) SyncOnce(ctx context.Context, since time.Time) (int, error) {
	base, err := url.Parse(w.baseURL)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid player sync URL %q", w.baseURL)
	}
	endpoint := base.JoinPath("players")
	q := endpoint.Query()
	q.Set("since", since.UTC().Format(time.RFC3339))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, eris.Wrap(err, "build player sync request")
	}
	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return 0, eris.Wrap(err, "player directory request failed")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, eris.Errorf("player directory returned %d: %s", resp.StatusCode, string(body))
	}

	var payload PlayerChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, eris.Wrap(err, "decode player directory response")
	}

	stored := 0
	for _, rp := range payload.Players {
		p := &models.Player{
			ID:          rp.ID,
			TeamID:      rp.TeamID,
			Name:        rp.Name,
			Nickname:    rp.Nickname,
			Position:    rp.Position,
			ShirtNumber: rp.ShirtNumber,
			Active:      rp.IsActive,
			CreatedAt:   rp.CreatedAt,
			UpdatedAt:   rp.UpdatedAt,
		}
		if err := w.mirror.Mirror(ctx, p); err != nil {
			log.Warn().Err(err).Str("player_id", rp.ID).Msg("[SYNC] failed to mirror player")
			continue
		}
		stored++
	}
	if stored > 0 {
		log.Info().Int("received", len(payload.Players)).Int("stored", stored).Msg("[SYNC] players synced")
	}
	return stored, nil
}
