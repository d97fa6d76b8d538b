package shared

import "context"

// RoleAdmin is the account role allowed to manage users and settings.
const RoleAdmin = "Admin"

// Actor identifies the signed-in account behind a request.
type Actor struct {
	UserID string
	Name   string
	Role   string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

type actorContextKey struct{}

// ContextWithActor stores the actor in context.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the actor from context.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}

// RequireAdmin returns ErrAdminRequired unless ctx carries an admin actor.
func RequireAdmin(ctx context.Context) (Actor, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return Actor{}, ErrNoSession
	}
	if !actor.IsAdmin() {
		return actor, ErrAdminRequired
	}
	return actor, nil
}
