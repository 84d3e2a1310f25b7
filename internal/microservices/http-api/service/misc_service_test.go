package service

import (
	"context"
	"testing"

	"medialit/database/dbtest"
	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/models"
	"medialit/internal/microservices/http-api/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodService(t *testing.T) {
	svc := NewMoodService(repository.NewMoodRepository(dbtest.New(t)))
	ctx := context.Background()

	_, err := svc.Record(ctx, "angry")
	requireValidation(t, err, "mood")

	for _, m := range []string{"happy", " Happy ", "sad"} {
		_, err := svc.Record(ctx, m)
		require.NoError(t, err)
	}

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, &dto.MoodSummaryResponse{Happy: 2, Sad: 1}, sum)
}

func TestUserService_EnsureAndPromote(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(dbtest.New(t)))
	ctx := context.Background()

	_, err := svc.Ensure(ctx, "not-a-uuid", "alice")
	requireValidation(t, err, "user_id")
	_, err = svc.Ensure(ctx, uuid.NewString(), " ")
	requireValidation(t, err, "username")

	id := uuid.NewString()
	u, err := svc.Ensure(ctx, id, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)

	promoted, err := svc.Promote(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	again, err := svc.Ensure(ctx, id, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, again.Role, "the stored role wins over the default")

	demoted, err := svc.Demote(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, demoted.IsAdmin())

	_, err = svc.Promote(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChatHistoryService(t *testing.T) {
	db := dbtest.New(t)
	chatRepo := repository.NewChatHistoryRepository(db)
	svc := NewChatHistoryService(chatRepo, repository.NewUserRepository(db))
	ctx := context.Background()

	alice := seedActor(t, db, "alice", "")
	bob := seedActor(t, db, "bob", "")
	admin := seedActor(t, db, "root", models.RoleAdmin)
	for _, q := range []string{"first", "second"} {
		require.NoError(t, chatRepo.Create(ctx, &models.ChatMessage{UserID: alice.UserID, Type: "info", Question: q, Answer: "a"}))
	}

	hist, err := svc.History(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, hist.Total)
	assert.Equal(t, "first", hist.Messages[0].Question)

	_, err = svc.History(ctx, bob, "alice")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = svc.History(ctx, bob, "ghost")
	assert.ErrorIs(t, err, ErrPermissionDenied, "non-admins cannot probe usernames")
	_, err = svc.History(ctx, admin, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	counts, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"alice": 2}, counts)

	_, err = svc.Clear(ctx, bob, "alice")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	cleared, err := svc.Clear(ctx, admin, "alice")
	require.NoError(t, err)
	assert.Equal(t, &dto.ClearHistoryResponse{Cleared: true, MessagesDeleted: 2}, cleared)

	cleared, err = svc.Clear(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), cleared.MessagesDeleted)
}
