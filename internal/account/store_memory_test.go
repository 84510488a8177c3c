package account

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	acct, err := store.Create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, acct.ID)
	assert.False(t, acct.CreatedAt.IsZero())
	assert.Equal(t, AdverseMediaUnknown, acct.AdverseMedia)

	found, err := store.Find(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, acct.ID, found.ID)
}

func TestInMemoryStore_FieldUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	acct, err := store.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, store.UpdateEmail(ctx, acct.ID, "jane@example.com"))
	require.NoError(t, store.UpdateSSN(ctx, acct.ID, "123-45-6789"))
	require.NoError(t, store.UpdateDocumentURL(ctx, acct.ID, "https://blobs/doc.jpg"))
	require.NoError(t, store.UpdateDocumentFields(ctx, acct.ID, DocumentFields{
		Name:    "Jane Doe",
		Address: "1 Main St",
	}))
	require.NoError(t, store.UpdateAdverseMedia(ctx, acct.ID, AdverseMediaNotFound))

	found, err := store.Find(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", found.Email)
	assert.Equal(t, "123-45-6789", found.SSN)
	assert.Equal(t, "https://blobs/doc.jpg", found.DocumentURL)
	require.NotNil(t, found.DocumentFields)
	assert.Equal(t, "Jane Doe", found.DocumentFields.Name)
	assert.Equal(t, AdverseMediaNotFound, found.AdverseMedia)
}

func TestInMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	_, err := store.Find(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.UpdateEmail(ctx, uuid.New(), "x@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStore_FindReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	acct, err := store.Create(ctx)
	require.NoError(t, err)

	found, err := store.Find(ctx, acct.ID)
	require.NoError(t, err)
	found.Email = "mutated@example.com"

	again, err := store.Find(ctx, acct.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Email)
}
