package domain

import (
	"context"
	"time"
)

// Identity is the resolvable "current user": either the profile document
// matching the active account, or the bare account itself when no document
// exists. Both shapes expose the account id and a display name so callers
// never branch on the concrete type.
type Identity interface {
	IdentityID() string
	DisplayName() string
}

// Account is the remote-provider identity record. Its id is immutable for
// the account's lifetime and owned entirely by the provider.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (a *Account) IdentityID() string  { return a.ID }
func (a *Account) DisplayName() string { return a.Name }

// Profile is the application-level document extending an Account, stored in
// the provider's user collection and keyed by accountId.
type Profile struct {
	DocumentID string    `json:"document_id"`
	AccountID  string    `json:"account_id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Avatar     string    `json:"avatar"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

func (p *Profile) IdentityID() string  { return p.AccountID }
func (p *Profile) DisplayName() string { return p.Username }

// Session is the ephemeral credential-backed handle issued by the provider
// for one account. Created by sign-in, destroyed by sign-out.
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Secret    string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Username        string `json:"username" validate:"required,min=3,max=64"`
	// WizardID hands off a completed onboarding wizard; its accumulated form
	// is persisted as the new user's fitness profile.
	WizardID string `json:"wizard_id" validate:"omitempty,uuid4"`
}

type SessionUsecase interface {
	Register(ctx context.Context, req *RegisterRequest) (*Profile, *Session, error)
	// SignIn reuses the session behind sessionSecret when still active
	// (idempotent short-circuit); the bool reports reuse.
	SignIn(ctx context.Context, sessionSecret, email, password string) (*Session, bool, error)
	// CurrentUser never fails outward: "no session" and unexpected errors
	// both resolve to (nil, nil).
	CurrentUser(ctx context.Context, sessionSecret string) (Identity, error)
	SignOut(ctx context.Context, sessionSecret string) error
	FitnessProfile(ctx context.Context, accountID string) (*FitnessProfile, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, userID, secret, newPassword string) error
}
