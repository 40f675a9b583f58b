package stream

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	playlists, err := s.playlists.ListPlaylists(r.Context(), sess.UserID)
	if err != nil {
		log.Printf("stream: list playlists: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching playlists")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"playlists": playlists,
	})
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	playlist, err := s.playlists.GetPlaylist(r.Context(), chi.URLParam(r, "id"), sess.UserID)
	if err != nil {
		if errors.Is(err, ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		log.Printf("stream: get playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching playlist")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"playlist": playlist,
	})
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPublic    bool   `json:"is_public"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "Playlist name is required")
		return
	}

	playlist, err := s.playlists.CreatePlaylist(r.Context(), sess.UserID,
		body.Name, strings.TrimSpace(body.Description), body.IsPublic)
	if err != nil {
		log.Printf("stream: create playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "Error creating playlist")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Playlist created successfully",
		"playlist": playlist,
	})
}

func (s *Server) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsPublic    *bool   `json:"is_public"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	upd := PlaylistUpdate{IsPublic: body.IsPublic}
	if body.Name != nil {
		// An empty name is ignored rather than rejected; PUT only replaces
		// what it was actually given.
		if name := strings.TrimSpace(*body.Name); name != "" {
			upd.Name = &name
		}
	}
	if body.Description != nil {
		desc := strings.TrimSpace(*body.Description)
		upd.Description = &desc
	}

	playlist, err := s.playlists.UpdatePlaylist(r.Context(), chi.URLParam(r, "id"), sess.UserID, upd)
	if err != nil {
		if errors.Is(err, ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		log.Printf("stream: update playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "Error updating playlist")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Playlist updated successfully",
		"playlist": playlist,
	})
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	err := s.playlists.DeletePlaylist(r.Context(), chi.URLParam(r, "id"), sess.UserID)
	if err != nil {
		if errors.Is(err, ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		log.Printf("stream: delete playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "Error deleting playlist")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Playlist deleted successfully",
	})
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	var body struct {
		SongID     string `json:"song_id"`
		Title      string `json:"title"`
		Artist     string `json:"artist"`
		Album      string `json:"album"`
		Duration   int    `json:"duration"`
		PreviewURL string `json:"preview_url"`
		ImageURL   string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(body.SongID) == "" {
		writeError(w, http.StatusBadRequest, "Song ID is required")
		return
	}

	playlist, err := s.playlists.AddSong(r.Context(), chi.URLParam(r, "id"), sess.UserID, PlaylistSong{
		SongID:     body.SongID,
		Title:      body.Title,
		Artist:     body.Artist,
		Album:      body.Album,
		Duration:   body.Duration,
		PreviewURL: body.PreviewURL,
		ImageURL:   body.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrPlaylistNotFound):
			writeError(w, http.StatusNotFound, "Playlist not found")
		case errors.Is(err, ErrDuplicateSong):
			writeError(w, http.StatusBadRequest, "Song already in playlist")
		default:
			log.Printf("stream: add song: %v", err)
			writeError(w, http.StatusInternalServerError, "Error adding song to playlist")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Song added to playlist",
		"playlist": playlist,
	})
}

func (s *Server) handleRemoveSong(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	playlist, err := s.playlists.RemoveSong(r.Context(),
		chi.URLParam(r, "id"), sess.UserID, chi.URLParam(r, "songId"))
	if err != nil {
		if errors.Is(err, ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		log.Printf("stream: remove song: %v", err)
		writeError(w, http.StatusInternalServerError, "Error removing song from playlist")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Song removed from playlist",
		"playlist": playlist,
	})
}
