package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/password"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/users"
	"github.com/dmitrijs2005/authgate/internal/server/services"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	issuer := auth.NewIssuer([]byte(testSecret), time.Hour)
	hasher := password.NewHasher(bcrypt.MinCost)
	us := services.NewUserService(users.NewInMemoryRepository(), hasher, issuer)
	return NewServer(":0", logger, us, issuer)
}

func doJSON(t *testing.T, s *Server, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func signupBody(username, email, pw string) map[string]string {
	return map[string]string{"username": username, "email": email, "password": pw}
}

func tokenFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestSignUp_Success(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/user/signup", signupBody("alice", "alice@x.com", "secret1"), nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tokenFrom(t, w)
}

func TestSignUp_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "missing username", body: signupBody("", "alice@x.com", "secret1")},
		{name: "bad email", body: signupBody("alice", "not-an-email", "secret1")},
		{name: "short password", body: signupBody("alice", "alice@x.com", "five5")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s, http.MethodPost, "/user/signup", tt.body, nil)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Errors []fieldError `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Errors)
		})
	}
}

func TestSignUp_ConflictIsGeneric(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/user/signup", signupBody("alice", "alice@x.com", "secret1"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, body := range []map[string]string{
		signupBody("alice", "other@x.com", "secret1"), // username taken
		signupBody("bob", "alice@x.com", "secret1"),   // email taken
	} {
		w = doJSON(t, s, http.MethodPost, "/user/signup", body, nil)
		require.Equal(t, http.StatusConflict, w.Code)
		// the response must not reveal which field collided
		assert.JSONEq(t, `{"error":"cannot create account"}`, w.Body.String())
	}
}

func TestLogin_Success(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/user/signup", signupBody("alice", "alice@x.com", "secret1"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPost, "/user/login", map[string]string{"email": "alice@x.com", "password": "secret1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tokenFrom(t, w)
}

func TestLogin_WrongCredentials(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/user/signup", signupBody("alice", "alice@x.com", "secret1"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	tests := []struct {
		name  string
		email string
		pw    string
	}{
		{name: "wrong password", email: "alice@x.com", pw: "secret2"},
		{name: "unknown email", email: "nobody@x.com", pw: "secret1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s, http.MethodPost, "/user/login", map[string]string{"email": tt.email, "password": tt.pw}, nil)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
		})
	}
}

func TestLogin_MalformedEmail(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/user/login", map[string]string{"email": "nope", "password": "secret1"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// Full flow: signup, reach the protected resource, then get rejected with a
// tampered token and with an expired one.
func TestProtectedResource_Flow(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/user/signup", signupBody("alice", "alice@x.com", "secret1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	token := tokenFrom(t, w)

	// valid token reaches the resource
	w = doJSON(t, s, http.MethodGet, "/user/me", nil, map[string]string{common.AccessTokenHeaderName: token})
	require.Equal(t, http.StatusOK, w.Code)

	var profile struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@x.com", profile.Email)

	// tamper one character
	tampered := []byte(token)
	if tampered[len(tampered)-1] == 'A' {
		tampered[len(tampered)-1] = 'B'
	} else {
		tampered[len(tampered)-1] = 'A'
	}
	w = doJSON(t, s, http.MethodGet, "/user/me", nil, map[string]string{common.AccessTokenHeaderName: string(tampered)})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())

	// a token already past its TTL, signed with the same server secret
	userID, err := auth.NewIssuer([]byte(testSecret), time.Hour).Verify(token)
	require.NoError(t, err)
	expired, err := auth.NewIssuer([]byte(testSecret), -time.Minute).Issue(userID)
	require.NoError(t, err)

	w = doJSON(t, s, http.MethodGet, "/user/me", nil, map[string]string{common.AccessTokenHeaderName: expired})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
}
