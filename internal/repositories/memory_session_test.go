package repositories

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resumai/internal/models"
)

func TestMemorySessionLifecycle(t *testing.T) {
	repo := NewMemorySessionRepository()

	session := &models.Session{}
	require.NoError(t, repo.Create(session))
	require.NotEqual(t, uuid.Nil, session.ID)

	profile := models.Profile{Name: "Ada Lovelace", Role: "Engineer"}
	require.NoError(t, repo.UpdateProfile(session.ID, profile))

	require.NoError(t, repo.AppendHistory(session.ID, models.ActionGeneratedResume, "first"))
	require.NoError(t, repo.AppendHistory(session.ID, models.ActionATSScan, "second"))

	found, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, profile, found.Profile)
	require.Len(t, found.History, 2)
	assert.Equal(t, "ATS Scan Performed - second", found.History[0].String())
	assert.Equal(t, "Generated Resume - first", found.History[1].String())

	require.NoError(t, repo.Delete(session.ID))
	_, err = repo.FindByID(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionReturnsCopies(t *testing.T) {
	repo := NewMemorySessionRepository()
	session := &models.Session{}
	require.NoError(t, repo.Create(session))
	require.NoError(t, repo.AppendHistory(session.ID, models.ActionATSScan, "Score: 10%"))

	found, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	found.Profile.Name = "mutated"
	found.History[0].Details = "mutated"

	again, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Profile.Name)
	assert.Equal(t, "Score: 10%", again.History[0].Details)
}

func TestMemorySessionUnknownID(t *testing.T) {
	repo := NewMemorySessionRepository()
	id := uuid.New()

	assert.ErrorIs(t, repo.UpdateProfile(id, models.Profile{}), ErrSessionNotFound)
	assert.ErrorIs(t, repo.AppendHistory(id, "a", "b"), ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(id), ErrSessionNotFound)
}
