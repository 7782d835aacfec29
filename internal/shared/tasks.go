package shared

// Asynq task type names. The API enqueues, cmd/worker consumes.
const (
	TypeExportPlaylist = "export:playlist"
)

// ExportPlaylistPayload carries an export request through the queue.
type ExportPlaylistPayload struct {
	UserID      string `json:"userId"`
	PlaylistID  string `json:"playlistId"`
	TargetEmail string `json:"targetEmail"`
}
