package job

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/infrastructure/email"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
)

type stubLoader struct {
	playlists map[string]*model.PlaylistWithSongs
}

func (s *stubLoader) GetWithSongs(_ context.Context, playlistID string) (*model.PlaylistWithSongs, error) {
	p, ok := s.playlists[playlistID]
	if !ok {
		return nil, fail.NotFound("playlist not found")
	}
	return p, nil
}

type capturingSender struct {
	sent []email.PlaylistExportData
}

func (c *capturingSender) SendPlaylistExport(_ context.Context, data email.PlaylistExportData) error {
	c.sent = append(c.sent, data)
	return nil
}

func exportTask(t *testing.T, payload shared.ExportPlaylistPayload) *asynq.Task {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeExportPlaylist, raw)
}

func TestProcessTask(t *testing.T) {
	ctx := context.Background()

	t.Run("mails the serialized playlist", func(t *testing.T) {
		loader := &stubLoader{playlists: map[string]*model.PlaylistWithSongs{
			"playlist-1": {
				ID:   "playlist-1",
				Name: "Road Trip",
				Songs: []model.SongSummary{
					{ID: "song-1", Title: "Life in Technicolor", Performer: "Coldplay"},
				},
			},
		}}
		sender := &capturingSender{}
		h := NewExportPlaylistHandler(loader, sender)

		err := h.ProcessTask(ctx, exportTask(t, shared.ExportPlaylistPayload{
			UserID:      "user-1",
			PlaylistID:  "playlist-1",
			TargetEmail: "me@example.com",
		}))
		require.NoError(t, err)

		require.Len(t, sender.sent, 1)
		mail := sender.sent[0]
		assert.Equal(t, "me@example.com", mail.TargetEmail)
		assert.Equal(t, "Road Trip", mail.PlaylistName)

		var envelope struct {
			Playlist struct {
				ID    string              `json:"id"`
				Name  string              `json:"name"`
				Songs []model.SongSummary `json:"songs"`
			} `json:"playlist"`
		}
		require.NoError(t, json.Unmarshal(mail.AttachedJSON, &envelope))
		assert.Equal(t, "playlist-1", envelope.Playlist.ID)
		require.Len(t, envelope.Playlist.Songs, 1)
		assert.Equal(t, "Coldplay", envelope.Playlist.Songs[0].Performer)
	})

	t.Run("empty playlist serializes songs as an empty array", func(t *testing.T) {
		loader := &stubLoader{playlists: map[string]*model.PlaylistWithSongs{
			"playlist-2": {ID: "playlist-2", Name: "Empty"},
		}}
		sender := &capturingSender{}
		h := NewExportPlaylistHandler(loader, sender)

		err := h.ProcessTask(ctx, exportTask(t, shared.ExportPlaylistPayload{
			PlaylistID:  "playlist-2",
			TargetEmail: "me@example.com",
		}))
		require.NoError(t, err)

		require.Len(t, sender.sent, 1)
		assert.Contains(t, string(sender.sent[0].AttachedJSON), `"songs":[]`)
	})

	t.Run("missing playlist returns the load error for retry", func(t *testing.T) {
		h := NewExportPlaylistHandler(&stubLoader{playlists: map[string]*model.PlaylistWithSongs{}}, &capturingSender{})
		err := h.ProcessTask(ctx, exportTask(t, shared.ExportPlaylistPayload{PlaylistID: "playlist-ghost"}))
		assert.Error(t, err)
	})

	t.Run("malformed payload is not retried", func(t *testing.T) {
		h := NewExportPlaylistHandler(&stubLoader{playlists: map[string]*model.PlaylistWithSongs{}}, &capturingSender{})
		err := h.ProcessTask(ctx, asynq.NewTask(shared.TypeExportPlaylist, []byte("{not json")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}
