package stream

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements UserStore and PlaylistStore on top of Postgres.
type PostgresStore struct {
	db DB
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool}
}

const userColumns = `id, full_name, email, username, password, created_at`

func (s *PostgresStore) CreateUser(ctx context.Context, fullName, email, username, passwordHash string) (User, error) {
	email = strings.ToLower(email)

	// Classify conflicts before inserting so the caller gets the right error;
	// the unique constraints below still catch the check-then-insert race.
	if _, err := s.FindUserByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}
	if _, err := s.FindUserByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	row := s.db.QueryRow(ctx, `INSERT INTO users (full_name, email, username, password)
        VALUES ($1, $2, $3, $4)
        RETURNING `+userColumns, fullName, email, username, passwordHash)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return User{}, ErrUsernameTaken
			}
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

func (s *PostgresStore) FindUserByID(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *PostgresStore) FindUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(email))
	return scanUser(row)
}

func (s *PostgresStore) FindUserByUsername(ctx context.Context, username string) (User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (s *PostgresStore) FindUserByEmailOrUsername(ctx context.Context, identifier string) (User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users
        WHERE email = $1 OR username = $2`,
		strings.ToLower(identifier), identifier)
	return scanUser(row)
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

const playlistColumns = `id, user_id, name, description, is_public, created_at, updated_at`

func (s *PostgresStore) ListPlaylists(ctx context.Context, userID string) ([]Playlist, error) {
	rows, err := s.db.Query(ctx, `SELECT `+playlistColumns+` FROM playlists
        WHERE user_id = $1
        ORDER BY updated_at DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := []Playlist{}
	for rows.Next() {
		var pl Playlist
		if err := rows.Scan(&pl.ID, &pl.UserID, &pl.Name, &pl.Description,
			&pl.IsPublic, &pl.CreatedAt, &pl.UpdatedAt); err != nil {
			return nil, err
		}
		playlists = append(playlists, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range playlists {
		songs, err := s.loadSongs(ctx, playlists[i].ID)
		if err != nil {
			return nil, err
		}
		playlists[i].Songs = songs
	}
	return playlists, nil
}

func (s *PostgresStore) GetPlaylist(ctx context.Context, id, userID string) (Playlist, error) {
	row := s.db.QueryRow(ctx, `SELECT `+playlistColumns+` FROM playlists
        WHERE id = $1 AND user_id = $2`, id, userID)

	var pl Playlist
	err := row.Scan(&pl.ID, &pl.UserID, &pl.Name, &pl.Description,
		&pl.IsPublic, &pl.CreatedAt, &pl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return Playlist{}, ErrPlaylistNotFound
		}
		return Playlist{}, err
	}

	pl.Songs, err = s.loadSongs(ctx, pl.ID)
	if err != nil {
		return Playlist{}, err
	}
	return pl, nil
}

func (s *PostgresStore) CreatePlaylist(ctx context.Context, userID, name, description string, isPublic bool) (Playlist, error) {
	row := s.db.QueryRow(ctx, `INSERT INTO playlists (user_id, name, description, is_public)
        VALUES ($1, $2, $3, $4)
        RETURNING `+playlistColumns, userID, name, description, isPublic)

	var pl Playlist
	err := row.Scan(&pl.ID, &pl.UserID, &pl.Name, &pl.Description,
		&pl.IsPublic, &pl.CreatedAt, &pl.UpdatedAt)
	if err != nil {
		return Playlist{}, err
	}
	pl.Songs = []PlaylistSong{}
	return pl, nil
}

func (s *PostgresStore) UpdatePlaylist(ctx context.Context, id, userID string, upd PlaylistUpdate) (Playlist, error) {
	existing, err := s.GetPlaylist(ctx, id, userID)
	if err != nil {
		return Playlist{}, err
	}

	if upd.Name != nil {
		existing.Name = *upd.Name
	}
	if upd.Description != nil {
		existing.Description = *upd.Description
	}
	if upd.IsPublic != nil {
		existing.IsPublic = *upd.IsPublic
	}

	row := s.db.QueryRow(ctx, `UPDATE playlists
        SET name = $3, description = $4, is_public = $5, updated_at = now()
        WHERE id = $1 AND user_id = $2
        RETURNING `+playlistColumns,
		id, userID, existing.Name, existing.Description, existing.IsPublic)
	err = row.Scan(&existing.ID, &existing.UserID, &existing.Name, &existing.Description,
		&existing.IsPublic, &existing.CreatedAt, &existing.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Playlist{}, ErrPlaylistNotFound
		}
		return Playlist{}, err
	}
	return existing, nil
}

func (s *PostgresStore) DeletePlaylist(ctx context.Context, id, userID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return ErrPlaylistNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

func (s *PostgresStore) AddSong(ctx context.Context, id, userID string, song PlaylistSong) (Playlist, error) {
	if _, err := s.GetPlaylist(ctx, id, userID); err != nil {
		return Playlist{}, err
	}

	_, err := s.db.Exec(ctx, `INSERT INTO playlist_songs
        (playlist_id, song_id, title, artist, album, duration, preview_url, image_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, song.SongID, song.Title, song.Artist, song.Album,
		song.Duration, song.PreviewURL, song.ImageURL)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Playlist{}, ErrDuplicateSong
		}
		return Playlist{}, err
	}

	if _, err := s.db.Exec(ctx, `UPDATE playlists SET updated_at = now() WHERE id = $1`, id); err != nil {
		return Playlist{}, err
	}
	return s.GetPlaylist(ctx, id, userID)
}

func (s *PostgresStore) RemoveSong(ctx context.Context, id, userID, songID string) (Playlist, error) {
	if _, err := s.GetPlaylist(ctx, id, userID); err != nil {
		return Playlist{}, err
	}

	// Deleting a song id that is not in the playlist is deliberately a no-op.
	if _, err := s.db.Exec(ctx, `DELETE FROM playlist_songs
        WHERE playlist_id = $1 AND song_id = $2`, id, songID); err != nil {
		return Playlist{}, err
	}
	if _, err := s.db.Exec(ctx, `UPDATE playlists SET updated_at = now() WHERE id = $1`, id); err != nil {
		return Playlist{}, err
	}
	return s.GetPlaylist(ctx, id, userID)
}

func (s *PostgresStore) loadSongs(ctx context.Context, playlistID string) ([]PlaylistSong, error) {
	rows, err := s.db.Query(ctx, `SELECT song_id, title, artist, album, duration, preview_url, image_url, added_at
        FROM playlist_songs
        WHERE playlist_id = $1
        ORDER BY added_at ASC`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := []PlaylistSong{}
	for rows.Next() {
		var sg PlaylistSong
		if err := rows.Scan(&sg.SongID, &sg.Title, &sg.Artist, &sg.Album,
			&sg.Duration, &sg.PreviewURL, &sg.ImageURL, &sg.AddedAt); err != nil {
			return nil, err
		}
		songs = append(songs, sg)
	}
	return songs, rows.Err()
}

// isInvalidUUID reports whether err is Postgres rejecting a malformed uuid
// literal. A path parameter that cannot be a uuid cannot name an existing
// row, so callers treat it as not found.
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
