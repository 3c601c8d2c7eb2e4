package http

import (
	"bytes"
	"log"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestAccessLogRecordsUserID(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, "regular")
	buf := captureLog(t)

	status, _ := env.do(t, http.MethodGet, "/api/auth/profile", token, "")
	require.Equal(t, http.StatusOK, status)

	// regular is the first seeded account
	assert.Contains(t, buf.String(), "user_id=1")
	assert.Contains(t, buf.String(), "path=/api/auth/profile")
}

func TestAccessLogAnonymousUserID(t *testing.T) {
	env := newTestEnv(t)
	buf := captureLog(t)

	status, _ := env.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, buf.String(), "user_id=0")
}
