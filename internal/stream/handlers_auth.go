package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const sessionCookieName = "session_id"

// Demo account auto-provisioned by the demo-login endpoint.
const (
	demoEmail    = "demo@musicstream.com"
	demoUsername = "demouser"
	demoFullName = "Demo User"
	demoPassword = "demo123456"
)

type ctxSessionKey struct{}

// sessionRequired rejects requests without a valid session cookie and puts
// the session record on the request context for the handler.
func (s *Server) sessionRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized. Please log in.")
			return
		}

		sess, err := s.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, ErrSessionNotFound) {
				log.Printf("stream: session lookup: %v", err)
			}
			writeError(w, http.StatusUnauthorized, "Unauthorized. Please log in.")
			return
		}

		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentSession(r *http.Request) Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(Session)
	return sess
}

// establishSession creates a server-side session for the user and sets the
// cookie on the response.
func (s *Server) establishSession(w http.ResponseWriter, r *http.Request, user User) error {
	sess, err := s.sessions.Create(r.Context(), user.ID, user.Username)
	if err != nil {
		return err
	}

	sameSite := http.SameSiteLaxMode
	if s.secureCookies {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: sameSite,
	})
	return nil
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
	})
}

// userPayload is the account shape returned by the auth endpoints. The
// password hash is never part of it.
func userPayload(u User) map[string]any {
	return map[string]any{
		"id":        u.ID,
		"username":  u.Username,
		"full_name": u.FullName,
		"email":     u.Email,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FullName        string `json:"full_name"`
		Email           string `json:"email"`
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	body.FullName = strings.TrimSpace(body.FullName)
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	body.Username = strings.TrimSpace(body.Username)

	switch {
	case body.FullName == "":
		writeError(w, http.StatusBadRequest, "Full name is required")
		return
	case !strings.Contains(body.Email, "@"):
		writeError(w, http.StatusBadRequest, "Please enter a valid email")
		return
	case len(body.Username) < 3:
		writeError(w, http.StatusBadRequest, "Username must be at least 3 characters long")
		return
	case len(body.Password) < 6:
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	case body.ConfirmPassword != body.Password:
		writeError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("stream: register hash: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error during registration")
		return
	}

	user, err := s.users.CreateUser(r.Context(), body.FullName, body.Email, body.Username, string(hash))
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, "Username already taken")
		default:
			log.Printf("stream: register create user: %v", err)
			writeError(w, http.StatusInternalServerError, "Server error during registration")
		}
		return
	}

	if err := s.establishSession(w, r, user); err != nil {
		log.Printf("stream: register session: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error during registration")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Registration successful!",
		"user":    userPayload(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UsernameOrEmail string `json:"username_or_email"`
		Password        string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	body.UsernameOrEmail = strings.TrimSpace(body.UsernameOrEmail)
	if body.UsernameOrEmail == "" {
		writeError(w, http.StatusBadRequest, "Username or email is required")
		return
	}
	if body.Password == "" {
		writeError(w, http.StatusBadRequest, "Password is required")
		return
	}

	user, err := s.users.FindUserByEmailOrUsername(r.Context(), body.UsernameOrEmail)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid username/email or password")
			return
		}
		log.Printf("stream: login lookup: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username/email or password")
		return
	}

	if err := s.establishSession(w, r, user); err != nil {
		log.Printf("stream: login session: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful!",
		"user":    userPayload(user),
	})
}

// handleDemoLogin signs in the shared demo account, creating it on first
// use. Repeated calls reuse the same account.
func (s *Server) handleDemoLogin(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.FindUserByEmail(r.Context(), demoEmail)
	if errors.Is(err, ErrUserNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			log.Printf("stream: demo login hash: %v", hashErr)
			writeError(w, http.StatusInternalServerError, "Server error during demo login")
			return
		}
		user, err = s.users.CreateUser(r.Context(), demoFullName, demoEmail, demoUsername, string(hash))
		if errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrUsernameTaken) {
			// Lost a race against another demo login; the account exists now.
			user, err = s.users.FindUserByEmail(r.Context(), demoEmail)
		}
	}
	if err != nil {
		log.Printf("stream: demo login: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error during demo login")
		return
	}

	if err := s.establishSession(w, r, user); err != nil {
		log.Printf("stream: demo login session: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error during demo login")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Demo login successful!",
		"user":    userPayload(user),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := s.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			log.Printf("stream: logout destroy: %v", err)
			writeError(w, http.StatusInternalServerError, "Error logging out")
			return
		}
	}
	s.clearSessionCookie(w)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (s *Server) handleAuthCheck(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	user, err := s.users.FindUserByID(r.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success":       false,
				"authenticated": false,
				"message":       "User not found",
			})
			return
		}
		log.Printf("stream: auth check: %v", err)
		writeError(w, http.StatusInternalServerError, "Error checking authentication")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"authenticated": true,
		"user":          userPayload(user),
	})
}
