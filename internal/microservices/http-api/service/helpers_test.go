package service

import (
	"context"
	"sync"
	"testing"

	"medialit/internal/microservices/http-api/models"
	"medialit/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func intPtr(i int) *int { return &i }

func seedActor(t *testing.T, db *gorm.DB, username, role string) *Actor {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewUserRepository(db)
	user, err := repo.Ensure(ctx, "", username)
	require.NoError(t, err)
	if role == models.RoleAdmin {
		user, err = repo.SetRole(ctx, username, role)
		require.NoError(t, err)
	}
	return &Actor{UserID: user.ID, Username: user.Username, Role: user.Role}
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, field, ve.Field)
}

// fakeGenerator replays canned answers and records the prompts it was sent.
type fakeGenerator struct {
	mu         sync.Mutex
	configured bool
	answer     string
	err        error
	prompts    []string
}

func (f *fakeGenerator) Configured() bool { return f.configured }

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}
