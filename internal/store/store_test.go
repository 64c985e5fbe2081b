package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s, err := NewGormStore(db)
	require.NoError(t, err)
	return s
}

func runStoreSuite(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "s1", "absent")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "s1", KeyTheme, "dark"))
		val, err := s.Get(ctx, "s1", KeyTheme)
		require.NoError(t, err)
		assert.Equal(t, "dark", val)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "s1", KeyCart, "[]"))
		require.NoError(t, s.Set(ctx, "s1", KeyCart, `[{"id":"A"}]`))
		val, err := s.Get(ctx, "s1", KeyCart)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"A"}]`, val)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "s1", KeySidebarCollapsed, "true"))
		_, err := s.Get(ctx, "s2", KeySidebarCollapsed)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "s1", KeyDiscountApplied, "true"))
		require.NoError(t, s.Delete(ctx, "s1", KeyDiscountApplied))
		_, err := s.Get(ctx, "s1", KeyDiscountApplied)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete missing is a no-op", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx, "s1", "absent"))
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemoryStore())
}

func TestGormStore(t *testing.T) {
	runStoreSuite(t, newSQLiteStore(t))
}

func TestGormStoreUpsertKeepsOneRow(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Set(ctx, "s1", KeyTheme, fmt.Sprintf("v%d", i)))
	}

	var count int64
	require.NoError(t, s.db.Model(&StateEntry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	val, err := s.Get(ctx, "s1", KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "v2", val)
}
