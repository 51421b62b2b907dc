package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/financeflow/internal/model"
	"github.com/Veraticus/financeflow/internal/service"
)

func TestBackupManager_CreateListDelete(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.CreateExpense(ctx, &model.Expense{Amount: 12, CategoryID: "groceries", Date: day("2024-01-05")}))

	bm, err := store.NewBackupManager()
	require.NoError(t, err)

	info, err := bm.Create(ctx, "before-import", "Before importing January")
	require.NoError(t, err)
	assert.Equal(t, "before-import", info.ID)
	assert.Equal(t, 1, info.RowCounts["expenses"])
	assert.Equal(t, len(model.DefaultCategories), info.RowCounts["categories"])
	assert.Equal(t, ExpectedSchemaVersion, info.SchemaVersion)
	assert.Positive(t, info.FileSize)
	assert.False(t, info.IsAuto)

	_, err = bm.Create(ctx, "before-import", "again")
	assert.ErrorIs(t, err, ErrBackupExists)

	_, err = bm.Create(ctx, "../escape", "")
	assert.ErrorIs(t, err, ErrInvalidBackupID)

	backups, err := bm.List(ctx)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, "Before importing January", backups[0].Description)

	require.NoError(t, bm.Delete(ctx, "before-import"))
	assert.ErrorIs(t, bm.Delete(ctx, "before-import"), ErrBackupNotFound)

	backups, err = bm.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestBackupManager_Restore(t *testing.T) {
	store, _ := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateExpense(ctx, &model.Expense{Amount: 12, CategoryID: "groceries", Date: day("2024-01-05")}))

	bm, err := store.NewBackupManager()
	require.NoError(t, err)
	_, err = bm.Create(ctx, "one-expense", "")
	require.NoError(t, err)

	require.NoError(t, store.CreateExpense(ctx, &model.Expense{Amount: 99, CategoryID: "dining", Date: day("2024-01-06")}))

	require.NoError(t, bm.Restore(ctx, "one-expense"))

	reopened, err := NewSQLiteStorage(store.Path())
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	expenses, err := reopened.GetExpenses(ctx, service.DateFilter{})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.InDelta(t, 12, expenses[0].Amount, 0.001)

	assert.ErrorIs(t, bm.Restore(ctx, "missing"), ErrBackupNotFound)
}

func TestBackupManager_AutoPrunes(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	bm, err := store.NewBackupManager()
	require.NoError(t, err)

	_, err = bm.Create(ctx, "manual", "kept")
	require.NoError(t, err)

	// Auto backup IDs have second resolution, so write them with explicit IDs.
	for i := range maxAutoBackups + 2 {
		_, err := bm.create(ctx, "auto-test-"+string(rune('a'+i)), "", true)
		require.NoError(t, err)
	}
	require.NoError(t, bm.pruneAuto(ctx))

	backups, err := bm.List(ctx)
	require.NoError(t, err)

	autos := 0
	for _, b := range backups {
		if b.IsAuto {
			autos++
		}
	}
	assert.Equal(t, maxAutoBackups, autos)
	assert.Len(t, backups, maxAutoBackups+1)
}
