package service

import "medialit/internal/microservices/http-api/models"

// Actor is the authenticated caller as resolved by the auth middleware. The role is the
// one stored in the database, not the one claimed in the token.
type Actor struct {
	UserID   string
	Username string
	Role     string
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == models.RoleAdmin
}

// OwnerID returns a pointer to the caller's id for optional ownership columns. Anonymous
// callers yield nil.
func (a *Actor) OwnerID() *string {
	if a == nil || a.UserID == "" {
		return nil
	}
	id := a.UserID
	return &id
}

// authorizeOwner allows the owner of a resource and admins.
func authorizeOwner(actor *Actor, ownerID string) error {
	if actor == nil {
		return ErrPermissionDenied
	}
	if actor.IsAdmin() || actor.UserID == ownerID {
		return nil
	}
	return ErrPermissionDenied
}
