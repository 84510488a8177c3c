package onboarding

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewInMemorySessionStore()

	session := &Session{ChatID: 42, AccountID: uuid.New(), State: StateDocument}
	require.NoError(t, store.Save(ctx, session))

	found, err := store.Find(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, session.AccountID, found.AccountID)

	// The store hands out copies; mutating one does not leak back.
	found.State = StateSSN
	again, err := store.Find(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, StateDocument, again.State)

	require.NoError(t, store.Delete(ctx, 42))
	_, err = store.Find(ctx, 42)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
