package service

import (
	"context"

	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/models"
	"medialit/internal/microservices/http-api/repository"
)

type ChatHistoryService interface {
	Counts(ctx context.Context) (map[string]int64, error)
	History(ctx context.Context, actor *Actor, username string) (*dto.ChatHistoryResponse, error)
	Clear(ctx context.Context, actor *Actor, username string) (*dto.ClearHistoryResponse, error)
}

type chatHistoryService struct {
	chatRepo repository.ChatHistoryRepository
	userRepo repository.UserRepository
}

func NewChatHistoryService(chatRepo repository.ChatHistoryRepository, userRepo repository.UserRepository) ChatHistoryService {
	return &chatHistoryService{chatRepo: chatRepo, userRepo: userRepo}
}

// Counts maps username to stored message count. Admin only, enforced by the route.
func (s *chatHistoryService) Counts(ctx context.Context) (map[string]int64, error) {
	rows, err := s.chatRepo.CountsByUser(ctx)
	if err != nil {
		return nil, storage(err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Username] = r.Count
	}
	return out, nil
}

func (s *chatHistoryService) History(ctx context.Context, actor *Actor, username string) (*dto.ChatHistoryResponse, error) {
	user, err := resolveOwned(ctx, s.userRepo, actor, username)
	if err != nil {
		return nil, err
	}
	msgs, err := s.chatRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, storage(err)
	}
	out := dto.FromModelsToChatMessageResponses(msgs)
	return &dto.ChatHistoryResponse{Username: user.Username, Messages: out, Total: len(out)}, nil
}

func (s *chatHistoryService) Clear(ctx context.Context, actor *Actor, username string) (*dto.ClearHistoryResponse, error) {
	user, err := resolveOwned(ctx, s.userRepo, actor, username)
	if err != nil {
		return nil, err
	}
	n, err := s.chatRepo.DeleteByUser(ctx, user.ID)
	if err != nil {
		return nil, storage(err)
	}
	return &dto.ClearHistoryResponse{Cleared: true, MessagesDeleted: n}, nil
}

// resolveOwned loads the named user for the owner or an admin. Non-admins asking about
// someone else are refused before the lookup, so they cannot probe which usernames exist.
func resolveOwned(ctx context.Context, userRepo repository.UserRepository, actor *Actor, username string) (*models.User, error) {
	if username == "" {
		return nil, invalid("username", "username is required")
	}
	if actor == nil || (!actor.IsAdmin() && actor.Username != username) {
		return nil, ErrPermissionDenied
	}
	user, err := userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if err := authorizeOwner(actor, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}
