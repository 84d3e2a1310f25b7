package database_test

import (
	"context"
	"testing"

	"medialit/database"
	"medialit/database/dbtest"
	"medialit/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_SeedsFixedPrompts(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	var prompts []models.PromptClick
	require.NoError(t, db.Order("prompt_id").Find(&prompts).Error)
	require.Len(t, prompts, len(models.PromptTemplates))
	for i, p := range prompts {
		assert.Equal(t, i+1, p.PromptID)
		assert.Equal(t, models.PromptTemplates[i], p.Text)
		assert.Zero(t, p.Clicks)
	}

	// Re-running keeps counters and does not duplicate rows.
	require.NoError(t, db.Model(&models.PromptClick{}).Where("prompt_id = ?", 2).Update("clicks", 7).Error)
	require.NoError(t, database.Migrate(ctx, db))

	var count int64
	require.NoError(t, db.Model(&models.PromptClick{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)

	var second models.PromptClick
	require.NoError(t, db.Where("prompt_id = ?", 2).First(&second).Error)
	assert.Equal(t, int64(7), second.Clicks)
}

func TestPing(t *testing.T) {
	db := dbtest.New(t)
	assert.NoError(t, database.Ping(context.Background(), db))
}
