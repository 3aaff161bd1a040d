package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"elitefit-backend/internal/domain"
	"elitefit-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type sessionUsecase struct {
	provider    domain.IdentityProvider
	profiles    domain.FitnessProfileRepository
	wizards     domain.WizardUsecase
	validate    *validator.Validate
	recoveryURL string
	// Collapses concurrent duplicate submissions (double-tap on sign-in /
	// sign-up) into a single provider call per email.
	group singleflight.Group
}

func NewSessionUsecase(
	provider domain.IdentityProvider,
	profiles domain.FitnessProfileRepository,
	wizards domain.WizardUsecase,
	validate *validator.Validate,
	recoveryURL string,
) domain.SessionUsecase {
	return &sessionUsecase{
		provider:    provider,
		profiles:    profiles,
		wizards:     wizards,
		validate:    validate,
		recoveryURL: recoveryURL,
	}
}

type registerResult struct {
	profile *domain.Profile
	session *domain.Session
}

// Register creates the provider account, establishes a session, and creates
// the matching profile document. Partial completion (account created but
// document creation failed) is not rolled back; the next sign-in falls back
// to the bare account identity.
func (u *sessionUsecase) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.Profile, *domain.Session, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, nil, apperror.BadRequest(registerValidationMessage(err))
	}

	value, err, _ := u.group.Do("register:"+strings.ToLower(req.Email), func() (interface{}, error) {
		account, err := u.provider.CreateAccount(ctx, uuid.NewString(), req.Email, req.Password, req.Username)
		if err != nil {
			if apperror.CodeOf(err) == http.StatusConflict {
				return nil, apperror.Conflict("Email already exists. Please use a different email or log in.")
			}
			return nil, err
		}

		avatarURL := u.provider.InitialsAvatarURL(req.Username)

		// Session creation failure aborts the whole flow; it is never swallowed
		session, _, err := u.signIn(ctx, "", req.Email, req.Password)
		if err != nil {
			return nil, err
		}

		profile, err := u.provider.CreateProfileDocument(ctx, uuid.NewString(), &domain.Profile{
			AccountID: account.ID,
			Email:     req.Email,
			Username:  req.Username,
			Avatar:    avatarURL,
		})
		if err != nil {
			return nil, err
		}

		u.persistWizardHandoff(ctx, account.ID, req.WizardID)

		return &registerResult{profile: profile, session: session}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	result := value.(*registerResult)
	return result.profile, result.session, nil
}

// SignIn establishes a session, reusing the one behind sessionSecret when it
// is still active. Reuse avoids the provider's "session already active"
// conflict on re-login.
func (u *sessionUsecase) SignIn(ctx context.Context, sessionSecret, email, password string) (*domain.Session, bool, error) {
	value, err, _ := u.group.Do("signin:"+strings.ToLower(email), func() (interface{}, error) {
		session, reused, err := u.signIn(ctx, sessionSecret, email, password)
		if err != nil {
			return nil, err
		}
		return &signInResult{session: session, reused: reused}, nil
	})
	if err != nil {
		return nil, false, err
	}

	result := value.(*signInResult)
	return result.session, result.reused, nil
}

type signInResult struct {
	session *domain.Session
	reused  bool
}

func (u *sessionUsecase) signIn(ctx context.Context, sessionSecret, email, password string) (*domain.Session, bool, error) {
	// Idempotent short-circuit: an active session is returned unchanged
	if sessionSecret != "" {
		if session, err := u.provider.GetSession(ctx, sessionSecret); err == nil && session != nil {
			return session, true, nil
		}
	}

	session, err := u.provider.CreateEmailSession(ctx, email, password)
	if err != nil {
		switch apperror.CodeOf(err) {
		case http.StatusUnauthorized:
			return nil, false, apperror.Unauthorized("Invalid email or password.")
		case http.StatusConflict:
			return nil, false, apperror.Conflict("A session is already active. Please sign out first.")
		default:
			return nil, false, err
		}
	}
	return session, false, nil
}

// CurrentUser resolves the active identity: the profile document matching
// the account when one exists, the bare account when the document lookup
// yields nothing or fails, and nil when there is no session at all. This
// operation never fails outward; launch-time identity resolution must not
// crash the app.
func (u *sessionUsecase) CurrentUser(ctx context.Context, sessionSecret string) (domain.Identity, error) {
	if sessionSecret == "" {
		return nil, nil
	}

	account, err := u.provider.GetAccount(ctx, sessionSecret)
	if err != nil || account == nil {
		return nil, nil
	}

	profiles, err := u.provider.ListProfilesByAccountID(ctx, account.ID)
	if err != nil {
		// Transient lookup failure degrades to the bare account identity
		fmt.Printf("Profile lookup failed for account %s: %v\n", account.ID, err)
		return account, nil
	}
	if len(profiles) == 0 {
		return account, nil
	}
	return &profiles[0], nil
}

func (u *sessionUsecase) SignOut(ctx context.Context, sessionSecret string) error {
	// Failure propagates: the caller must know logout did not complete
	return u.provider.DeleteSession(ctx, sessionSecret)
}

func (u *sessionUsecase) FitnessProfile(ctx context.Context, accountID string) (*domain.FitnessProfile, error) {
	return u.profiles.GetByAccountID(ctx, accountID)
}

// RequestPasswordReset always reports success to the caller so responses do
// not reveal whether an email is registered.
func (u *sessionUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	if err := u.provider.CreateRecovery(ctx, email, u.recoveryURL); err != nil {
		fmt.Printf("Password recovery request failed (non-fatal): %v\n", err)
	}
	return nil
}

func (u *sessionUsecase) ResetPassword(ctx context.Context, userID, secret, newPassword string) error {
	if err := u.provider.UpdateRecovery(ctx, userID, secret, newPassword); err != nil {
		if apperror.CodeOf(err) == http.StatusUnauthorized {
			return apperror.BadRequest("Invalid or expired recovery link. Please request a new one.")
		}
		return err
	}
	return nil
}

// persistWizardHandoff stores the completed onboarding form as the new
// user's fitness profile. Failure here is logged, not fatal: the account and
// profile document already exist and the wizard can be re-run in app.
func (u *sessionUsecase) persistWizardHandoff(ctx context.Context, accountID, wizardID string) {
	if wizardID == "" {
		return
	}

	form, err := u.wizards.Consume(ctx, wizardID)
	if err != nil || form == nil {
		fmt.Printf("Onboarding handoff skipped for account %s: %v\n", accountID, err)
		return
	}

	age, _ := strconv.Atoi(strings.TrimSpace(form.Age))
	weight, _ := strconv.ParseFloat(strings.TrimSpace(form.Weight), 64)

	profile := &domain.FitnessProfile{
		AccountID:  accountID,
		Experience: domain.ExperienceLevel(form.Experience),
		Age:        age,
		WeightKg:   weight,
		Height:     strings.TrimSpace(form.Height),
		Gender:     domain.Gender(form.Gender),
	}
	if err := u.profiles.Save(ctx, profile); err != nil {
		fmt.Printf("Failed to persist onboarding profile for account %s: %v\n", accountID, err)
	}
}

// registerValidationMessage turns validator errors into the messages the
// signup form shows per field.
func registerValidationMessage(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return "Validation failed: " + err.Error()
	}

	switch fieldErr := validationErrs[0]; fieldErr.Field() {
	case "Email":
		return "Invalid email address"
	case "Password":
		return "Password must be at least 6 characters"
	case "ConfirmPassword":
		return "Passwords do not match!"
	case "Username":
		return "Full name must be at least 3 characters"
	default:
		return "Validation failed on field " + fieldErr.Field()
	}
}
