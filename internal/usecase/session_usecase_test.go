package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"elitefit-backend/internal/domain"
	"elitefit-backend/internal/usecase"
	"elitefit-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Identity Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateAccount(ctx context.Context, userID, email, password, name string) (*domain.Account, error) {
	args := m.Called(ctx, userID, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockProvider) CreateEmailSession(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockProvider) GetSession(ctx context.Context, sessionSecret string) (*domain.Session, error) {
	args := m.Called(ctx, sessionSecret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockProvider) GetAccount(ctx context.Context, sessionSecret string) (*domain.Account, error) {
	args := m.Called(ctx, sessionSecret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockProvider) DeleteSession(ctx context.Context, sessionSecret string) error {
	return m.Called(ctx, sessionSecret).Error(0)
}

func (m *MockProvider) CreateProfileDocument(ctx context.Context, documentID string, profile *domain.Profile) (*domain.Profile, error) {
	args := m.Called(ctx, documentID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProvider) ListProfilesByAccountID(ctx context.Context, accountID string) ([]domain.Profile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockProvider) CreateRecovery(ctx context.Context, email, redirectURL string) error {
	return m.Called(ctx, email, redirectURL).Error(0)
}

func (m *MockProvider) UpdateRecovery(ctx context.Context, userID, secret, newPassword string) error {
	return m.Called(ctx, userID, secret, newPassword).Error(0)
}

func (m *MockProvider) InitialsAvatarURL(name string) string {
	return m.Called(name).String(0)
}

// Mock Fitness Profile Repository
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Save(ctx context.Context, profile *domain.FitnessProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) GetByAccountID(ctx context.Context, accountID string) (*domain.FitnessProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FitnessProfile), args.Error(1)
}

// Mock Wizard Usecase
type MockWizardUC struct {
	mock.Mock
}

func (m *MockWizardUC) Start(ctx context.Context) (*domain.WizardState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WizardState), args.Error(1)
}

func (m *MockWizardUC) Advance(ctx context.Context, id string, patch domain.WizardForm) (*domain.WizardState, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WizardState), args.Error(1)
}

func (m *MockWizardUC) Retreat(ctx context.Context, id string) (*domain.WizardState, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WizardState), args.Error(1)
}

func (m *MockWizardUC) Get(ctx context.Context, id string) (*domain.WizardState, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WizardState), args.Error(1)
}

func (m *MockWizardUC) Consume(ctx context.Context, id string) (*domain.WizardForm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WizardForm), args.Error(1)
}

func newSessionUC(provider *MockProvider, profiles *MockProfileRepo, wizards *MockWizardUC) domain.SessionUsecase {
	return usecase.NewSessionUsecase(provider, profiles, wizards, validator.New(), "https://app.example.com/reset-password")
}

func validRegisterRequest() *domain.RegisterRequest {
	return &domain.RegisterRequest{
		Email:           "jane@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Username:        "Jane Doe",
	}
}

func TestRegister(t *testing.T) {
	t.Run("Should create account, session, and matching profile document", func(t *testing.T) {
		provider := new(MockProvider)
		profiles := new(MockProfileRepo)
		wizards := new(MockWizardUC)
		uc := newSessionUC(provider, profiles, wizards)

		account := &domain.Account{ID: "acc-1", Email: "jane@example.com", Name: "Jane Doe"}
		provider.On("CreateAccount", mock.Anything, mock.Anything, "jane@example.com", "secret123", "Jane Doe").Return(account, nil)
		provider.On("InitialsAvatarURL", "Jane Doe").Return("https://provider.test/avatars/initials?name=Jane+Doe")
		provider.On("CreateEmailSession", mock.Anything, "jane@example.com", "secret123").
			Return(&domain.Session{ID: "sess-1", AccountID: "acc-1", Secret: "s3cr3t"}, nil)
		provider.On("CreateProfileDocument", mock.Anything, mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.AccountID == "acc-1" && p.Username == "Jane Doe" && p.Avatar != ""
		})).Return(&domain.Profile{DocumentID: "doc-1", AccountID: "acc-1", Username: "Jane Doe"}, nil)

		profile, session, err := uc.Register(context.Background(), validRegisterRequest())

		assert.NoError(t, err)
		assert.Equal(t, "acc-1", profile.AccountID)
		assert.Equal(t, "acc-1", session.AccountID)
		assert.Equal(t, "s3cr3t", session.Secret)
		provider.AssertExpectations(t)
	})

	t.Run("Should map duplicate email to conflict without creating a session", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		provider.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperror.Conflict("user_already_exists"))

		_, _, err := uc.Register(context.Background(), validRegisterRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "Email already exists")
		provider.AssertNotCalled(t, "CreateEmailSession", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should fail registration when session creation fails", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		provider.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Account{ID: "acc-1"}, nil)
		provider.On("InitialsAvatarURL", mock.Anything).Return("https://provider.test/a")
		provider.On("CreateEmailSession", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperror.Unauthorized("general_unauthorized_scope"))

		_, _, err := uc.Register(context.Background(), validRegisterRequest())

		assert.Error(t, err)
		provider.AssertNotCalled(t, "CreateProfileDocument", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject invalid email with the form message", func(t *testing.T) {
		uc := newSessionUC(new(MockProvider), new(MockProfileRepo), new(MockWizardUC))

		req := validRegisterRequest()
		req.Email = "not-an-email"
		_, _, err := uc.Register(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "Invalid email address")
	})

	t.Run("Should reject mismatched passwords with the form message", func(t *testing.T) {
		uc := newSessionUC(new(MockProvider), new(MockProfileRepo), new(MockWizardUC))

		req := validRegisterRequest()
		req.ConfirmPassword = "different1"
		_, _, err := uc.Register(context.Background(), req)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Passwords do not match!")
	})

	t.Run("Should persist the consumed wizard form as the fitness profile", func(t *testing.T) {
		provider := new(MockProvider)
		profiles := new(MockProfileRepo)
		wizards := new(MockWizardUC)
		uc := newSessionUC(provider, profiles, wizards)

		wizardID := "0f8fad5b-d9cb-4d6c-9c4b-2b7e6f3a1d2e"
		provider.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Account{ID: "acc-1"}, nil)
		provider.On("InitialsAvatarURL", mock.Anything).Return("https://provider.test/a")
		provider.On("CreateEmailSession", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Session{ID: "sess-1", AccountID: "acc-1", Secret: "s"}, nil)
		provider.On("CreateProfileDocument", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Profile{AccountID: "acc-1"}, nil)
		wizards.On("Consume", mock.Anything, wizardID).Return(&domain.WizardForm{
			Experience: "Beginner",
			Age:        "28",
			Weight:     "72.5",
			Height:     "5'9\"",
			Gender:     "Female",
		}, nil)
		profiles.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.FitnessProfile) bool {
			return p.AccountID == "acc-1" && p.Age == 28 && p.WeightKg == 72.5 && p.Gender == domain.GenderFemale
		})).Return(nil)

		req := validRegisterRequest()
		req.WizardID = wizardID
		_, _, err := uc.Register(context.Background(), req)

		assert.NoError(t, err)
		profiles.AssertExpectations(t)
	})

	t.Run("Should still register when wizard handoff fails", func(t *testing.T) {
		provider := new(MockProvider)
		profiles := new(MockProfileRepo)
		wizards := new(MockWizardUC)
		uc := newSessionUC(provider, profiles, wizards)

		provider.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Account{ID: "acc-1"}, nil)
		provider.On("InitialsAvatarURL", mock.Anything).Return("https://provider.test/a")
		provider.On("CreateEmailSession", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Session{ID: "sess-1", AccountID: "acc-1", Secret: "s"}, nil)
		provider.On("CreateProfileDocument", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Profile{AccountID: "acc-1"}, nil)
		wizards.On("Consume", mock.Anything, mock.Anything).
			Return(nil, apperror.NotFound("Onboarding session not found or expired"))

		req := validRegisterRequest()
		req.WizardID = "0f8fad5b-d9cb-4d6c-9c4b-2b7e6f3a1d2e"
		_, _, err := uc.Register(context.Background(), req)

		assert.NoError(t, err)
		profiles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSignIn(t *testing.T) {
	t.Run("Should reuse the active session instead of creating a new one", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		active := &domain.Session{ID: "sess-1", AccountID: "acc-1", Secret: "live"}
		provider.On("GetSession", mock.Anything, "live").Return(active, nil)

		session, reused, err := uc.SignIn(context.Background(), "live", "jane@example.com", "secret123")

		assert.NoError(t, err)
		assert.True(t, reused)
		assert.Equal(t, "sess-1", session.ID)
		provider.AssertNotCalled(t, "CreateEmailSession", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should create a fresh session when the old secret is dead", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		provider.On("GetSession", mock.Anything, "stale").Return(nil, apperror.NotFound("session_not_found"))
		provider.On("CreateEmailSession", mock.Anything, "jane@example.com", "secret123").
			Return(&domain.Session{ID: "sess-2", AccountID: "acc-1", Secret: "fresh"}, nil)

		session, reused, err := uc.SignIn(context.Background(), "stale", "jane@example.com", "secret123")

		assert.NoError(t, err)
		assert.False(t, reused)
		assert.Equal(t, "sess-2", session.ID)
	})

	t.Run("Should map bad credentials to unauthorized", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		provider.On("CreateEmailSession", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperror.Unauthorized("user_invalid_credentials"))

		_, _, err := uc.SignIn(context.Background(), "", "jane@example.com", "wrong")

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "Invalid email or password.")
	})

	t.Run("Should map session conflict to the sign-out-first message", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		provider.On("CreateEmailSession", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperror.Conflict("user_session_already_exists"))

		_, _, err := uc.SignIn(context.Background(), "", "jane@example.com", "secret123")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "sign out first")
	})
}

func TestCurrentUser(t *testing.T) {
	t.Run("Should resolve nil without error when no session secret", func(t *testing.T) {
		uc := newSessionUC(new(MockProvider), new(MockProfileRepo), new(MockWizardUC))

		identity, err := uc.CurrentUser(context.Background(), "")

		assert.NoError(t, err)
		assert.Nil(t, identity)
	})

	t.Run("Should resolve nil without error when the session is dead", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		provider.On("GetAccount", mock.Anything, "dead").Return(nil, apperror.Unauthorized("general_unauthorized_scope"))

		identity, err := uc.CurrentUser(context.Background(), "dead")

		assert.NoError(t, err)
		assert.Nil(t, identity)
	})

	t.Run("Should prefer the profile document when one matches the account", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		provider.On("GetAccount", mock.Anything, "live").Return(&domain.Account{ID: "acc-1", Name: "Jane Doe"}, nil)
		provider.On("ListProfilesByAccountID", mock.Anything, "acc-1").
			Return([]domain.Profile{{DocumentID: "doc-1", AccountID: "acc-1", Username: "janedoe"}}, nil)

		identity, err := uc.CurrentUser(context.Background(), "live")

		assert.NoError(t, err)
		assert.Equal(t, "acc-1", identity.IdentityID())
		assert.Equal(t, "janedoe", identity.DisplayName())
	})

	t.Run("Should fall back to the bare account when no document exists", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		provider.On("GetAccount", mock.Anything, "live").Return(&domain.Account{ID: "acc-1", Name: "Jane Doe"}, nil)
		provider.On("ListProfilesByAccountID", mock.Anything, "acc-1").Return([]domain.Profile{}, nil)

		identity, err := uc.CurrentUser(context.Background(), "live")

		assert.NoError(t, err)
		assert.Equal(t, "Jane Doe", identity.DisplayName())
	})

	t.Run("Should fall back to the bare account when the document lookup fails", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		provider.On("GetAccount", mock.Anything, "live").Return(&domain.Account{ID: "acc-1", Name: "Jane Doe"}, nil)
		provider.On("ListProfilesByAccountID", mock.Anything, "acc-1").Return(nil, errors.New("network down"))

		identity, err := uc.CurrentUser(context.Background(), "live")

		assert.NoError(t, err)
		assert.Equal(t, "acc-1", identity.IdentityID())
	})
}

func TestSignOut(t *testing.T) {
	t.Run("Should propagate deletion failure", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		provider.On("DeleteSession", mock.Anything, "live").Return(errors.New("network down"))

		err := uc.SignOut(context.Background(), "live")

		assert.Error(t, err)
	})
}

func TestPasswordRecovery(t *testing.T) {
	t.Run("Should report success even when the recovery request fails", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		provider.On("CreateRecovery", mock.Anything, "ghost@example.com", mock.Anything).
			Return(apperror.NotFound("user_not_found"))

		err := uc.RequestPasswordReset(context.Background(), "ghost@example.com")

		assert.NoError(t, err)
	})

	t.Run("Should map an expired recovery secret to a bad request", func(t *testing.T) {
		provider := new(MockProvider)
		uc := newSessionUC(provider, new(MockProfileRepo), new(MockWizardUC))

		provider.On("UpdateRecovery", mock.Anything, "acc-1", "expired", "newpass1").
			Return(apperror.Unauthorized("user_invalid_token"))

		err := uc.ResetPassword(context.Background(), "acc-1", "expired", "newpass1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "recovery link")
	})
}
