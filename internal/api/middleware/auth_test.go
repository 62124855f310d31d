package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callAuth(t *testing.T, headers map[string]string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()

	Auth(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthMasterHeader(t *testing.T) {
	rec, r := callAuth(t, map[string]string{HeaderMasterID: "42"})
	require.Equal(t, http.StatusOK, rec.Code)

	id, ok := MasterID(r)
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = ClientID(r)
	assert.False(t, ok)
}

func TestAuthClientHeader(t *testing.T) {
	rec, r := callAuth(t, map[string]string{HeaderClientID: "7"})
	require.Equal(t, http.StatusOK, rec.Code)

	id, ok := ClientID(r)
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestAuthBothHeaders(t *testing.T) {
	rec, r := callAuth(t, map[string]string{HeaderMasterID: "42", HeaderClientID: "7"})
	require.Equal(t, http.StatusOK, rec.Code)

	masterID, ok := MasterID(r)
	require.True(t, ok)
	assert.Equal(t, int64(42), masterID)

	clientID, ok := ClientID(r)
	require.True(t, ok)
	assert.Equal(t, int64(7), clientID)
}

func TestAuthMissingHeaders(t *testing.T) {
	rec, captured := callAuth(t, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

func TestAuthInvalidHeader(t *testing.T) {
	for _, raw := range []string{"abc", "-1", "0", "1.5"} {
		rec, captured := callAuth(t, map[string]string{HeaderMasterID: raw})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "value %q", raw)
		assert.Nil(t, captured)
	}
}
