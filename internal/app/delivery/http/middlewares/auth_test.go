package middlewares

import (
	"context"
	"encounter-service/internal/app/config"
	"encounter-service/internal/pkg/constvars"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRedisRepository struct {
	values map[string]string
}

func (f *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}

func (f *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeRedisRepository) Delete(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func signSessionToken(t *testing.T, secret, sessionID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID,
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	secret := "test-secret"
	internalConfig := &config.InternalConfig{JWT: config.JWT{Secret: secret}}
	redisRepository := &fakeRedisRepository{values: map[string]string{
		"session-1": `{"session_id":"session-1","user_id":"user-1","practitioner_id":"practitioner-1","roles":["practitioner"]}`,
		"session-2": `not json`,
	}}
	m := NewMiddlewares(zap.NewNop(), redisRepository, internalConfig)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := r.Context().Value(constvars.CONTEXT_SESSION_ID_KEY).(string)
		assert.True(t, ok)
		assert.Equal(t, "session-1", sessionID)

		sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
		assert.True(t, ok)
		assert.NotEmpty(t, sessionData)

		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token with a live session passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/encounters", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+signSessionToken(t, secret, "session-1"))

		rr := httptest.NewRecorder()
		m.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing bearer token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/encounters", nil)

		rr := httptest.NewRecorder()
		m.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token signed with another secret is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/encounters", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+signSessionToken(t, "other-secret", "session-1"))

		rr := httptest.NewRecorder()
		m.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired session is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/encounters", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+signSessionToken(t, secret, "session-gone"))

		rr := httptest.NewRecorder()
		m.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed session payload is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/encounters", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+signSessionToken(t, secret, "session-2"))

		rr := httptest.NewRecorder()
		m.Authenticate(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	m := NewMiddlewares(zap.NewNop(), &fakeRedisRepository{}, &config.InternalConfig{})

	t.Run("generates an id when the client sends none", func(t *testing.T) {
		var seen string
		handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("keeps the client-supplied id", func(t *testing.T) {
		var seen string
		handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		}))

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id-1")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-id-1", seen)
	})
}
