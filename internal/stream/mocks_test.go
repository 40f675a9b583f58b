package stream

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(ctx context.Context, fullName, email, username, passwordHash string) (User, error) {
	args := m.Called(ctx, fullName, email, username, passwordHash)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockUserStore) FindUserByID(ctx context.Context, id string) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockUserStore) FindUserByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockUserStore) FindUserByUsername(ctx context.Context, username string) (User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockUserStore) FindUserByEmailOrUsername(ctx context.Context, identifier string) (User, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(User), args.Error(1)
}

type MockPlaylistStore struct {
	mock.Mock
}

func (m *MockPlaylistStore) ListPlaylists(ctx context.Context, userID string) ([]Playlist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Playlist), args.Error(1)
}

func (m *MockPlaylistStore) GetPlaylist(ctx context.Context, id, userID string) (Playlist, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(Playlist), args.Error(1)
}

func (m *MockPlaylistStore) CreatePlaylist(ctx context.Context, userID, name, description string, isPublic bool) (Playlist, error) {
	args := m.Called(ctx, userID, name, description, isPublic)
	return args.Get(0).(Playlist), args.Error(1)
}

func (m *MockPlaylistStore) UpdatePlaylist(ctx context.Context, id, userID string, upd PlaylistUpdate) (Playlist, error) {
	args := m.Called(ctx, id, userID, upd)
	return args.Get(0).(Playlist), args.Error(1)
}

func (m *MockPlaylistStore) DeletePlaylist(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockPlaylistStore) AddSong(ctx context.Context, id, userID string, song PlaylistSong) (Playlist, error) {
	args := m.Called(ctx, id, userID, song)
	return args.Get(0).(Playlist), args.Error(1)
}

func (m *MockPlaylistStore) RemoveSong(ctx context.Context, id, userID, songID string) (Playlist, error) {
	args := m.Called(ctx, id, userID, songID)
	return args.Get(0).(Playlist), args.Error(1)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, userID, username string) (Session, error) {
	args := m.Called(ctx, userID, username)
	return args.Get(0).(Session), args.Error(1)
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (Session, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Session), args.Error(1)
}

func (m *MockSessionStore) Destroy(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
