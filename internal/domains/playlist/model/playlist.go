package model

import "time"

// Playlist has exactly one owner, fixed at creation.
type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlaylistSummary is the list projection with the owner's username.
type PlaylistSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

type PlaylistWithSongs struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Songs    []SongSummary `json:"songs"`
}

// Activity actions.
const (
	ActionAdd    = "add"
	ActionDelete = "delete"
)

// ActivityEntry is one immutable audit record of a song-set change,
// denormalized for display.
type ActivityEntry struct {
	Username string    `json:"username"`
	Title    string    `json:"title"`
	Action   string    `json:"action"`
	Time     time.Time `json:"time"`
}

// SongChange carries one membership mutation and its audit identity. The
// repository writes both rows in a single transaction.
type SongChange struct {
	MembershipID string
	ActivityID   string
	PlaylistID   string
	SongID       string
	ActorID      string
}
