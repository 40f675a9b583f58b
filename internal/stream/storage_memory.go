package stream

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the fallback backend used when no database is reachable.
// Data lives for the lifetime of the process. It mirrors the Postgres
// store's observable behavior exactly so handlers cannot tell them apart.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []User
	playlists []Playlist
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateUser(ctx context.Context, fullName, email, username, passwordHash string) (User, error) {
	email = strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return User{}, ErrEmailTaken
		}
	}
	for _, u := range s.users {
		if u.Username == username {
			return User{}, ErrUsernameTaken
		}
	}

	u := User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *MemoryStore) FindUserByID(ctx context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(func(u User) bool { return u.ID == id })
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (User, error) {
	lower := strings.ToLower(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(func(u User) bool { return u.Email == lower })
}

func (s *MemoryStore) FindUserByUsername(ctx context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(func(u User) bool { return u.Username == username })
}

func (s *MemoryStore) FindUserByEmailOrUsername(ctx context.Context, identifier string) (User, error) {
	lower := strings.ToLower(identifier)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUser(func(u User) bool { return u.Email == lower || u.Username == identifier })
}

func (s *MemoryStore) findUser(match func(User) bool) (User, error) {
	for _, u := range s.users {
		if match(u) {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *MemoryStore) ListPlaylists(ctx context.Context, userID string) ([]Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Playlist{}
	for i := range s.playlists {
		if s.playlists[i].UserID == userID {
			out = append(out, clonePlaylist(s.playlists[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) GetPlaylist(ctx context.Context, id, userID string) (Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pl := s.lookup(id, userID)
	if pl == nil {
		return Playlist{}, ErrPlaylistNotFound
	}
	return clonePlaylist(*pl), nil
}

func (s *MemoryStore) CreatePlaylist(ctx context.Context, userID, name, description string, isPublic bool) (Playlist, error) {
	now := time.Now()
	pl := Playlist{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: description,
		IsPublic:    isPublic,
		Songs:       []PlaylistSong{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	s.playlists = append(s.playlists, pl)
	s.mu.Unlock()
	return clonePlaylist(pl), nil
}

func (s *MemoryStore) UpdatePlaylist(ctx context.Context, id, userID string, upd PlaylistUpdate) (Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pl := s.lookup(id, userID)
	if pl == nil {
		return Playlist{}, ErrPlaylistNotFound
	}
	if upd.Name != nil {
		pl.Name = *upd.Name
	}
	if upd.Description != nil {
		pl.Description = *upd.Description
	}
	if upd.IsPublic != nil {
		pl.IsPublic = *upd.IsPublic
	}
	pl.UpdatedAt = time.Now()
	return clonePlaylist(*pl), nil
}

func (s *MemoryStore) DeletePlaylist(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.playlists {
		if s.playlists[i].ID == id && s.playlists[i].UserID == userID {
			s.playlists = append(s.playlists[:i], s.playlists[i+1:]...)
			return nil
		}
	}
	return ErrPlaylistNotFound
}

func (s *MemoryStore) AddSong(ctx context.Context, id, userID string, song PlaylistSong) (Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pl := s.lookup(id, userID)
	if pl == nil {
		return Playlist{}, ErrPlaylistNotFound
	}
	for _, existing := range pl.Songs {
		if existing.SongID == song.SongID {
			return Playlist{}, ErrDuplicateSong
		}
	}
	song.AddedAt = time.Now()
	pl.Songs = append(pl.Songs, song)
	pl.UpdatedAt = song.AddedAt
	return clonePlaylist(*pl), nil
}

func (s *MemoryStore) RemoveSong(ctx context.Context, id, userID, songID string) (Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pl := s.lookup(id, userID)
	if pl == nil {
		return Playlist{}, ErrPlaylistNotFound
	}
	kept := pl.Songs[:0]
	for _, sg := range pl.Songs {
		if sg.SongID != songID {
			kept = append(kept, sg)
		}
	}
	pl.Songs = kept
	pl.UpdatedAt = time.Now()
	return clonePlaylist(*pl), nil
}

// lookup returns a pointer into s.playlists; callers must hold s.mu.
func (s *MemoryStore) lookup(id, userID string) *Playlist {
	for i := range s.playlists {
		if s.playlists[i].ID == id && s.playlists[i].UserID == userID {
			return &s.playlists[i]
		}
	}
	return nil
}

func clonePlaylist(pl Playlist) Playlist {
	songs := make([]PlaylistSong, len(pl.Songs))
	copy(songs, pl.Songs)
	pl.Songs = songs
	return pl
}
