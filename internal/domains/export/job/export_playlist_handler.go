package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/alfrdzley/openmusic-api-v3/internal/domains/playlist/model"
	"github.com/alfrdzley/openmusic-api-v3/internal/infrastructure/email"
	"github.com/alfrdzley/openmusic-api-v3/internal/shared"
)

// PlaylistLoader reads the playlist snapshot the export serializes. The
// playlist repository satisfies it.
type PlaylistLoader interface {
	GetWithSongs(ctx context.Context, playlistID string) (*model.PlaylistWithSongs, error)
}

// ExportPlaylistHandler processes export:playlist tasks: load the playlist
// with its songs, serialize it, and mail the JSON to the requested address.
type ExportPlaylistHandler struct {
	playlists PlaylistLoader
	mailer    email.Sender
}

func NewExportPlaylistHandler(playlists PlaylistLoader, mailer email.Sender) *ExportPlaylistHandler {
	return &ExportPlaylistHandler{playlists: playlists, mailer: mailer}
}

// exportEnvelope is the attachment shape consumers of the export expect.
type exportEnvelope struct {
	Playlist exportPlaylist `json:"playlist"`
}

type exportPlaylist struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Songs []model.SongSummary `json:"songs"`
}

func (h *ExportPlaylistHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.ExportPlaylistPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode export payload: %w", asynq.SkipRetry)
	}

	p, err := h.playlists.GetWithSongs(ctx, payload.PlaylistID)
	if err != nil {
		return fmt.Errorf("load playlist %s: %w", payload.PlaylistID, err)
	}

	songs := p.Songs
	if songs == nil {
		songs = []model.SongSummary{}
	}
	attachment, err := json.Marshal(exportEnvelope{
		Playlist: exportPlaylist{ID: p.ID, Name: p.Name, Songs: songs},
	})
	if err != nil {
		return fmt.Errorf("serialize playlist %s: %w", payload.PlaylistID, err)
	}

	if err := h.mailer.SendPlaylistExport(ctx, email.PlaylistExportData{
		TargetEmail:  payload.TargetEmail,
		PlaylistName: p.Name,
		AttachedJSON: attachment,
	}); err != nil {
		return err
	}

	log.Info().
		Str("playlist_id", payload.PlaylistID).
		Str("target_email", payload.TargetEmail).
		Msg("playlist export delivered")
	return nil
}
