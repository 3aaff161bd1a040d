package domain

import "context"

// IdentityProvider abstracts the hosted identity/document provider
// (Appwrite). Session-scoped calls take the session secret explicitly so the
// service holds no ambient session state and tests can substitute a fake.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, userID, email, password, name string) (*Account, error)
	CreateEmailSession(ctx context.Context, email, password string) (*Session, error)
	// GetSession resolves the session behind the secret, or NotFound-kind
	// error when none is active.
	GetSession(ctx context.Context, sessionSecret string) (*Session, error)
	GetAccount(ctx context.Context, sessionSecret string) (*Account, error)
	DeleteSession(ctx context.Context, sessionSecret string) error

	CreateProfileDocument(ctx context.Context, documentID string, profile *Profile) (*Profile, error)
	ListProfilesByAccountID(ctx context.Context, accountID string) ([]Profile, error)

	CreateRecovery(ctx context.Context, email, redirectURL string) error
	UpdateRecovery(ctx context.Context, userID, secret, newPassword string) error

	// InitialsAvatarURL is pure and derived; no network failure mode.
	InitialsAvatarURL(name string) string
}
