package stream

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserStore holds accounts and their credentials. Email lookups are
// case-insensitive, username lookups are case-sensitive.
type UserStore interface {
	// CreateUser stores a new account. The password must already be hashed.
	// Returns ErrEmailTaken or ErrUsernameTaken on conflict, checking email
	// first.
	CreateUser(ctx context.Context, fullName, email, username, passwordHash string) (User, error)
	FindUserByID(ctx context.Context, id string) (User, error)
	FindUserByEmail(ctx context.Context, email string) (User, error)
	FindUserByUsername(ctx context.Context, username string) (User, error)
	// FindUserByEmailOrUsername resolves a login identifier: lowercased email
	// match or exact username match.
	FindUserByEmailOrUsername(ctx context.Context, identifier string) (User, error)
}

// PlaylistStore holds per-user playlists. Every owner-scoped operation
// returns ErrPlaylistNotFound when the playlist is absent or owned by
// someone else; callers cannot tell the two apart.
type PlaylistStore interface {
	// ListPlaylists returns the user's playlists, most recently updated first.
	ListPlaylists(ctx context.Context, userID string) ([]Playlist, error)
	GetPlaylist(ctx context.Context, id, userID string) (Playlist, error)
	CreatePlaylist(ctx context.Context, userID, name, description string, isPublic bool) (Playlist, error)
	// UpdatePlaylist applies the non-nil fields of upd and bumps updated_at.
	UpdatePlaylist(ctx context.Context, id, userID string, upd PlaylistUpdate) (Playlist, error)
	DeletePlaylist(ctx context.Context, id, userID string) error
	// AddSong appends a song entry with a fresh added_at. Returns
	// ErrDuplicateSong if the song id is already in the playlist.
	AddSong(ctx context.Context, id, userID string, song PlaylistSong) (Playlist, error)
	// RemoveSong deletes the entry with the given song id. Removing an absent
	// song id is not an error; the playlist is returned either way.
	RemoveSong(ctx context.Context, id, userID, songID string) (Playlist, error)
}

// DB is the subset of pgxpool.Pool the Postgres store uses. It exists so
// tests can inject pgxmock.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
