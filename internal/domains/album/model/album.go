package model

import "time"

type Album struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	CoverURL  *string   `json:"coverUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SongSummary is the song projection embedded in album detail responses.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

type AlbumDetail struct {
	Album
	Songs []SongSummary `json:"songs"`
}

// Like is one user's like of one album. The (album_id, user_id) pair is
// unique in the store; that index is the only concurrency control.
type Like struct {
	ID      string
	AlbumID string
	UserID  string
}

// Like count sources.
const (
	LikeSourceCache    = "cache"
	LikeSourceDatabase = "database"
)

// LikeCount is the canonical countLikes result: always count plus where it
// came from, never a bare number.
type LikeCount struct {
	Count  int    `json:"likes"`
	Source string `json:"-"`
}
