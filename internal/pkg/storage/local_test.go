package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("policy v1"), "documents/policy/handbook.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "documents/policy/handbook.pdf", key)

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Download(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "policy v1", string(body))

	url, err := s.GetURL(ctx, key, 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/documents/policy/handbook.pdf", url)

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key), "deleting twice is not an error")

	ok, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Download(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	for _, key := range []string{"../secret.txt", "a/../../secret.txt", "/etc/passwd", ""} {
		_, err := s.Upload(ctx, strings.NewReader("x"), key, "text/plain")
		assert.ErrorIs(t, err, ErrInvalidPath, key)

		_, err = s.Download(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidPath, key)
	}
}
