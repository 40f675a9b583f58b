package stream

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHandleRegister(t *testing.T) {
	valid := func() map[string]any {
		return map[string]any{
			"full_name":        "Alice Example",
			"email":            "Alice@Example.com",
			"username":         "alice",
			"password":         "password123",
			"confirm_password": "password123",
		}
	}

	tests := []struct {
		name        string
		mutate      func(map[string]any)
		wantCode    int
		wantMessage string
	}{
		{
			name:     "Success",
			mutate:   func(m map[string]any) {},
			wantCode: http.StatusCreated,
		},
		{
			name:        "Missing Full Name",
			mutate:      func(m map[string]any) { m["full_name"] = "   " },
			wantCode:    http.StatusBadRequest,
			wantMessage: "Full name is required",
		},
		{
			name:        "Invalid Email",
			mutate:      func(m map[string]any) { m["email"] = "not-an-email" },
			wantCode:    http.StatusBadRequest,
			wantMessage: "Please enter a valid email",
		},
		{
			name:        "Short Username",
			mutate:      func(m map[string]any) { m["username"] = "al" },
			wantCode:    http.StatusBadRequest,
			wantMessage: "Username must be at least 3 characters long",
		},
		{
			name:        "Short Password",
			mutate:      func(m map[string]any) { m["password"] = "12345"; m["confirm_password"] = "12345" },
			wantCode:    http.StatusBadRequest,
			wantMessage: "Password must be at least 6 characters long",
		},
		{
			name:        "Password Mismatch",
			mutate:      func(m map[string]any) { m["confirm_password"] = "different123" },
			wantCode:    http.StatusBadRequest,
			wantMessage: "Passwords do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := newTestServer()

			body := valid()
			tt.mutate(body)
			w := doJSON(t, router, "POST", "/api/auth/register", body)

			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			resp := decodeBody(t, w)
			if tt.wantMessage != "" {
				assert.False(t, resp["success"].(bool))
				assert.Equal(t, tt.wantMessage, resp["message"])
			}
		})
	}

	t.Run("Success Details", func(t *testing.T) {
		_, router := newTestServer()

		w := doJSON(t, router, "POST", "/api/auth/register", valid())
		require.Equal(t, http.StatusCreated, w.Code)

		resp := decodeBody(t, w)
		assert.True(t, resp["success"].(bool))
		user := resp["user"].(map[string]any)
		assert.Equal(t, "alice@example.com", user["email"], "email is stored lowercased")
		assert.Equal(t, "alice", user["username"])
		assert.NotContains(t, user, "password")
		assert.NotContains(t, w.Body.String(), "password123")

		cookie := sessionCookie(t, w)
		assert.True(t, cookie.HttpOnly)

		// The session from registration is immediately usable.
		check := doJSON(t, router, "GET", "/api/auth/check", nil, cookie)
		assert.Equal(t, http.StatusOK, check.Code)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		_, router := newTestServer()
		registerUser(t, router, "alice")

		body := valid()
		body["username"] = "different"
		w := doJSON(t, router, "POST", "/api/auth/register", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email already registered", decodeBody(t, w)["message"])
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		_, router := newTestServer()
		registerUser(t, router, "alice")

		body := valid()
		body["email"] = "other@example.com"
		w := doJSON(t, router, "POST", "/api/auth/register", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Username already taken", decodeBody(t, w)["message"])
	})
}

func TestHandleLogin(t *testing.T) {
	t.Run("By Username", func(t *testing.T) {
		_, router := newTestServer()
		registerUser(t, router, "alice")

		w := doJSON(t, router, "POST", "/api/auth/login", map[string]any{
			"username_or_email": "alice",
			"password":          "password123",
		})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotNil(t, sessionCookie(t, w))
	})

	t.Run("By Email Case Insensitive", func(t *testing.T) {
		_, router := newTestServer()
		registerUser(t, router, "alice")

		w := doJSON(t, router, "POST", "/api/auth/login", map[string]any{
			"username_or_email": "ALICE@Example.com",
			"password":          "password123",
		})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, router := newTestServer()
		registerUser(t, router, "alice")

		w := doJSON(t, router, "POST", "/api/auth/login", map[string]any{
			"username_or_email": "alice",
			"password":          "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username/email or password", decodeBody(t, w)["message"])
	})

	t.Run("Unknown Identifier", func(t *testing.T) {
		_, router := newTestServer()

		w := doJSON(t, router, "POST", "/api/auth/login", map[string]any{
			"username_or_email": "nobody",
			"password":          "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username/email or password", decodeBody(t, w)["message"])
	})

	t.Run("Missing Fields", func(t *testing.T) {
		_, router := newTestServer()

		w := doJSON(t, router, "POST", "/api/auth/login", map[string]any{"password": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(t, router, "POST", "/api/auth/login", map[string]any{"username_or_email": "alice"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("password123")))
	assert.Error(t, bcrypt.CompareHashAndPassword(hash, []byte("password124")))
}

func TestHandleDemoLogin(t *testing.T) {
	_, router := newTestServer()

	first := doJSON(t, router, "POST", "/api/auth/demo-login", nil)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	firstUser := decodeBody(t, first)["user"].(map[string]any)
	assert.Equal(t, demoEmail, firstUser["email"])
	assert.Equal(t, demoUsername, firstUser["username"])

	// Second call must reuse the account, not create another one.
	second := doJSON(t, router, "POST", "/api/auth/demo-login", nil)
	require.Equal(t, http.StatusOK, second.Code)
	secondUser := decodeBody(t, second)["user"].(map[string]any)
	assert.Equal(t, firstUser["id"], secondUser["id"])
}

func TestHandleLogout(t *testing.T) {
	t.Run("Destroys Session", func(t *testing.T) {
		_, router := newTestServer()
		cookie, _ := registerUser(t, router, "alice")

		w := doJSON(t, router, "POST", "/api/auth/logout", nil, cookie)
		assert.Equal(t, http.StatusOK, w.Code)

		// The old cookie no longer authenticates.
		check := doJSON(t, router, "GET", "/api/auth/check", nil, cookie)
		assert.Equal(t, http.StatusUnauthorized, check.Code)
	})

	t.Run("Without Session Still Succeeds", func(t *testing.T) {
		_, router := newTestServer()

		w := doJSON(t, router, "POST", "/api/auth/logout", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Destroy Failure", func(t *testing.T) {
		mem := NewMemoryStore()
		sessions := new(MockSessionStore)
		sessions.On("Destroy", mock.Anything, "sess-1").Return(errors.New("backend down"))

		srv := NewServer(mem, mem, sessions, NewSampleCatalog(), false)
		router := srv.Router()

		w := doJSON(t, router, "POST", "/api/auth/logout", nil,
			&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Error logging out", decodeBody(t, w)["message"])
	})
}

func TestHandleAuthCheck(t *testing.T) {
	t.Run("No Cookie", func(t *testing.T) {
		_, router := newTestServer()

		w := doJSON(t, router, "GET", "/api/auth/check", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized. Please log in.", decodeBody(t, w)["message"])
	})

	t.Run("Garbage Cookie", func(t *testing.T) {
		_, router := newTestServer()

		w := doJSON(t, router, "GET", "/api/auth/check", nil,
			&http.Cookie{Name: sessionCookieName, Value: "bogus"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Session", func(t *testing.T) {
		_, router := newTestServer()
		cookie, userID := registerUser(t, router, "alice")

		w := doJSON(t, router, "GET", "/api/auth/check", nil, cookie)
		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody(t, w)
		assert.True(t, resp["authenticated"].(bool))
		assert.Equal(t, userID, resp["user"].(map[string]any)["id"])
	})

	t.Run("Session For Deleted User", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("FindUserByID", mock.Anything, "gone").Return(User{}, ErrUserNotFound)

		sessions := NewMemorySessionStore()
		sess, err := sessions.Create(t.Context(), "gone", "ghost")
		require.NoError(t, err)

		mem := NewMemoryStore()
		srv := NewServer(users, mem, sessions, NewSampleCatalog(), false)
		router := srv.Router()

		w := doJSON(t, router, "GET", "/api/auth/check", nil,
			&http.Cookie{Name: sessionCookieName, Value: sess.ID})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, false, resp["authenticated"])
		assert.Equal(t, "User not found", resp["message"])
	})
}
