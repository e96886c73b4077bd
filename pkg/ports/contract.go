package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pdaboat/pkg/domain"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		s := domain.NewSession(sessionID, "palindrome", "ab#ba", domain.ModeBatch)
		s.Cursor = 3
		s.Prediction = domain.PredictionAccept
		s.PendingQuiz = "palindrome-middle"
		s.Score.Record(domain.VerdictAccept, domain.PredictionAccept)

		require.NoError(t, store.Save(ctx, sessionID, s), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, s.ID, loaded.ID)
		assert.Equal(t, s.TemplateID, loaded.TemplateID)
		assert.Equal(t, s.Input, loaded.Input)
		assert.Equal(t, s.Mode, loaded.Mode)
		assert.Equal(t, 3, loaded.Cursor)
		assert.Equal(t, s.Prediction, loaded.Prediction)
		assert.Equal(t, s.PendingQuiz, loaded.PendingQuiz)
		assert.Equal(t, s.Score, loaded.Score)
		assert.True(t, s.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Loaded Copy Is Independent", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Cursor = 99

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 3, again.Cursor)
	})

	t.Run("Overwrite", func(t *testing.T) {
		s := domain.NewSession(sessionID, "anbn", "ab", domain.ModeMicro)
		require.NoError(t, store.Save(ctx, sessionID, s))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "anbn", loaded.TemplateID)
		assert.Zero(t, loaded.Cursor)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewSession(sessionID, "anbn", "", domain.ModeMicro)))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewSession(id1, "anbn", "a", domain.ModeMicro)))
		require.NoError(t, store.Save(ctx, id2, domain.NewSession(id2, "anbn", "b", domain.ModeMicro)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
		assert.NotContains(t, sessions, sessionID)
	})
}
