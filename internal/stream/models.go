package stream

import (
	"errors"
	"time"
)

// User is an account holder. The password hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Playlist is owned by exactly one user. Songs are denormalized snapshots of
// catalog entries, ordered by when they were added.
type Playlist struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	IsPublic    bool           `json:"is_public"`
	Songs       []PlaylistSong `json:"songs"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PlaylistSong is a song entry embedded in a playlist. SongID refers to the
// catalog song it was copied from and is unique within one playlist.
type PlaylistSong struct {
	SongID     string    `json:"song_id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Album      string    `json:"album"`
	Duration   int       `json:"duration"`
	PreviewURL string    `json:"preview_url"`
	ImageURL   string    `json:"image_url"`
	AddedAt    time.Time `json:"added_at"`
}

// PlaylistUpdate carries a partial metadata update; nil fields are left as-is.
type PlaylistUpdate struct {
	Name        *string
	Description *string
	IsPublic    *bool
}

// Song is a catalog entry served by the music routes.
type Song struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	Duration   int    `json:"duration"`
	PreviewURL string `json:"preview_url"`
	ImageURL   string `json:"image_url"`
}

// Session is a server-side login record keyed by the client cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrDuplicateSong    = errors.New("song already in playlist")
	ErrSessionNotFound  = errors.New("session not found")
)
