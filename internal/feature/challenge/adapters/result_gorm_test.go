package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_frame/internal/feature/challenge/domain"
	"stock_frame/internal/feature/challenge/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&ResultModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func appleResult() entity.Result {
	return entity.Result{
		Challenge: "apple",
		IndexName: "date",
		IndexType: entity.DTypeDatetime64NS,
		Columns:   []string{"open", "high", "low", "close", "volume"},
		Rows:      251,
		CreatedAt: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
	}
}

func TestNewResultRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewResultRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestResultGorm_SaveAndFind(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewResultRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, appleResult()))

	got, err := repo.FindByName(ctx, "apple")
	require.NoError(t, err)
	assert.Equal(t, "apple", got.Challenge)
	assert.Equal(t, "date", got.IndexName)
	assert.Equal(t, entity.DTypeDatetime64NS, got.IndexType)
	assert.Equal(t, []string{"open", "high", "low", "close", "volume"}, got.Columns)
	assert.Equal(t, 251, got.Rows)
	assert.True(t, got.CreatedAt.Equal(appleResult().CreatedAt), "created_at mismatch: %v", got.CreatedAt)
}

func TestResultGorm_Save_Upsert(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewResultRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, appleResult()))

	updated := appleResult()
	updated.IndexName = "Date"
	updated.IndexType = entity.DTypeObject
	updated.Columns = []string{"Open"}
	require.NoError(t, repo.Save(ctx, updated))

	var count int64
	db.Model(&ResultModel{}).Count(&count)
	assert.Equal(t, int64(1), count, "upsert must not create a second row")

	got, err := repo.FindByName(ctx, "apple")
	require.NoError(t, err)
	assert.Equal(t, "Date", got.IndexName)
	assert.Equal(t, entity.DTypeObject, got.IndexType)
	assert.Equal(t, []string{"Open"}, got.Columns)
}

func TestResultGorm_Save_NilColumns(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewResultRepository(db)
	ctx := context.Background()

	r := appleResult()
	r.Columns = nil
	require.NoError(t, repo.Save(ctx, r))

	got, err := repo.FindByName(ctx, "apple")
	require.NoError(t, err)
	assert.Empty(t, got.Columns)
}

func TestResultGorm_FindByName_NotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewResultRepository(db)

	_, err := repo.FindByName(context.Background(), "banana")
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}
