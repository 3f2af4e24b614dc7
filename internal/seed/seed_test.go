package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolio/internal/database"
	"portfolio/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestProjectsIsIdempotent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, Projects(ctx, db))
	require.NoError(t, Projects(ctx, db))

	var count int64
	db.Model(&models.Project{}).Count(&count)
	assert.Equal(t, int64(len(catalog)), count)
}

func TestDemoComments(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, Projects(ctx, db))
	require.NoError(t, DemoComments(ctx, db, 4))

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(4*len(catalog)), count)

	var sample models.Comment
	require.NoError(t, db.First(&sample).Error)
	assert.NotEmpty(t, sample.Name)
	assert.NotEmpty(t, sample.Content)
	assert.NotZero(t, sample.ProjectID)
}
