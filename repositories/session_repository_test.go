package repositories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katsunaka/court-booking/models"
)

func TestSessionRepositoryMissingFileMeansLoggedOut(t *testing.T) {
	repo := NewFileSessionRepository(filepath.Join(t.TempDir(), "session.json"))

	session, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, session.Authenticated)
}

func TestSessionRepositorySurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	require.NoError(t, NewFileSessionRepository(path).Save(models.Session{Authenticated: true}))

	// A fresh repository instance stands in for a process restart.
	session, err := NewFileSessionRepository(path).Load()
	require.NoError(t, err)
	assert.True(t, session.Authenticated)
}

func TestSessionRepositoryFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, NewFileSessionRepository(path).Save(models.Session{Authenticated: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"authenticated":true}`, string(data))
}
