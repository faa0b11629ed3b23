package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/jwt"
	"github.com/sbilibin2017/gw-social-network/internal/logger"
	"github.com/sbilibin2017/gw-social-network/internal/mailer"
	"github.com/sbilibin2017/gw-social-network/internal/models"
)

//go:generate mockgen -source=account.go -destination=account_mock.go -package=services

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
}

// TokenIssuer signs and verifies purpose-bound tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, p jwt.Purpose, userID uuid.UUID, username string) (string, error)
	GetClaims(ctx context.Context, p jwt.Purpose, token string) (*jwt.Claims, error)
}

// Mailer hands a built message over for delivery.
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// ProfileCache caches public profiles by user id.
type ProfileCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error)
	Set(ctx context.Context, profile *models.PublicProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewUser is the input of account creation.
type NewUser struct {
	Username string
	Email    string
	FullName string
	Password string
}

// AccountService owns the user account lifecycle.
type AccountService struct {
	reader      UserReader
	writer      UserWriter
	tokens      TokenIssuer
	mailer      Mailer
	cache       ProfileCache
	backendURL  string
	frontendURL string
	now         func() time.Time
}

// NewAccountService creates a new AccountService instance. mailer and cache may be nil.
func NewAccountService(
	reader UserReader,
	writer UserWriter,
	tokens TokenIssuer,
	mailer Mailer,
	cache ProfileCache,
	backendURL, frontendURL string,
) *AccountService {
	return &AccountService{
		reader:      reader,
		writer:      writer,
		tokens:      tokens,
		mailer:      mailer,
		cache:       cache,
		backendURL:  strings.TrimRight(backendURL, "/"),
		frontendURL: strings.TrimRight(frontendURL, "/"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateNew normalizes identifiers, derives credentials, issues the email
// confirmation token and persists the user. The verification email is sent
// only after the user is stored.
func (svc *AccountService) CreateNew(ctx context.Context, in NewUser) (*models.User, error) {
	log := logger.FromContext(ctx)

	now := svc.now()
	user := &models.User{
		ID:        uuid.New(),
		Username:  models.NormalizeIdentifier(in.Username),
		FullName:  strings.TrimSpace(in.FullName),
		Avatar:    models.DefaultAvatar,
		Since:     now,
		UpdatedAt: now,
	}
	if user.Username == "" || models.NormalizeIdentifier(in.Email) == "" {
		return nil, ErrInvalidInput
	}

	if err := user.SetPassword(in.Password); err != nil {
		log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	msg, err := svc.setEmail(ctx, user, in.Email)
	if err != nil {
		return nil, err
	}

	if err := svc.writer.Create(ctx, user); err != nil {
		log.Errorw("failed to create user", "username", user.Username, "err", err)
		return nil, err
	}

	svc.send(ctx, msg)
	return user, nil
}

// Register creates a user and returns its auth response.
func (svc *AccountService) Register(ctx context.Context, in NewUser) (*models.AuthResponse, error) {
	user, err := svc.CreateNew(ctx, in)
	if err != nil {
		return nil, err
	}
	return svc.ToAuthResponse(ctx, user)
}

// Login authenticates by username or email. Unknown identifiers and wrong
// passwords both yield ErrInvalidCredentials.
func (svc *AccountService) Login(ctx context.Context, identifier, password string) (*models.AuthResponse, error) {
	user, err := svc.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.FromContext(ctx).Errorw("user does not exist", "identifier", identifier)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.ValidPassword(password) {
		logger.FromContext(ctx).Errorw("invalid credentials", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return svc.ToAuthResponse(ctx, user)
}

// FindByIdentifier looks a user up by case-folded username or email.
func (svc *AccountService) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	return svc.reader.GetByIdentifier(ctx, models.NormalizeIdentifier(identifier))
}

func (svc *AccountService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return svc.reader.GetByID(ctx, id)
}

// GetPublicProfile reads through the profile cache. Cache failures fall back to the store.
func (svc *AccountService) GetPublicProfile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error) {
	log := logger.FromContext(ctx)

	if svc.cache != nil {
		profile, err := svc.cache.Get(ctx, id)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, ErrNotFound) {
			log.Warnw("profile cache read failed", "user_id", id, "err", err)
		}
	}

	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := user.PublicProfile()
	if svc.cache != nil {
		if err := svc.cache.Set(ctx, profile); err != nil {
			log.Warnw("profile cache write failed", "user_id", id, "err", err)
		}
	}
	return profile, nil
}

// UpdateProfile overwrites every profile field of user. An email change goes
// through setEmail, so it resets verification and mails a new link.
func (svc *AccountService) UpdateProfile(ctx context.Context, user *models.User, upd models.ProfileUpdate) (*models.PublicProfile, error) {
	log := logger.FromContext(ctx)

	username := models.NormalizeIdentifier(upd.Username)
	if username == "" || models.NormalizeIdentifier(upd.Email) == "" {
		return nil, ErrInvalidInput
	}

	user.FullName = strings.TrimSpace(upd.FullName)
	user.Username = username
	user.DOB = upd.DOB
	user.Gender = upd.Gender
	user.Address = upd.Address

	msg, err := svc.setEmail(ctx, user, upd.Email)
	if err != nil {
		return nil, err
	}
	user.UpdatedAt = svc.now()

	if err := svc.writer.Update(ctx, user); err != nil {
		log.Errorw("failed to update user", "user_id", user.ID, "err", err)
		return nil, err
	}
	svc.invalidate(ctx, user.ID)

	svc.send(ctx, msg)
	return user.PublicProfile(), nil
}

// ChangePassword replaces the password after checking the current one.
func (svc *AccountService) ChangePassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error {
	if !user.ValidPassword(oldPassword) {
		logger.FromContext(ctx).Errorw("invalid credentials", "user_id", user.ID)
		return ErrInvalidCredentials
	}
	return svc.storePassword(ctx, user, newPassword)
}

// VerifyEmail accepts an email confirmation token and returns the frontend
// redirect target carrying a fresh session token. The token must match the
// one stored on the user it names.
func (svc *AccountService) VerifyEmail(ctx context.Context, token string) (string, error) {
	log := logger.FromContext(ctx)

	claims, err := svc.tokens.GetClaims(ctx, jwt.EmailConfirmation, token)
	if err != nil {
		log.Errorw("email token rejected", "err", err)
		return "", ErrInvalidToken
	}

	user, err := svc.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		log.Errorw("email token user lookup failed", "user_id", claims.UserID, "err", err)
		return "", ErrInvalidToken
	}
	if user.EmailToken != token {
		log.Errorw("stale email token", "user_id", user.ID)
		return "", ErrInvalidToken
	}

	if err := svc.writer.MarkVerified(ctx, user.ID); err != nil {
		log.Errorw("failed to mark user verified", "user_id", user.ID, "err", err)
		return "", err
	}
	user.Verified = true
	svc.invalidate(ctx, user.ID)

	session, err := svc.GenerateSessionToken(ctx, user)
	if err != nil {
		return "", err
	}
	return svc.frontendURL + "/server-login?success=true&token=" + url.QueryEscape(session), nil
}

// GenerateResetPasswordURL issues a password reset token and embeds it in the backend link.
func (svc *AccountService) GenerateResetPasswordURL(ctx context.Context, user *models.User) (string, error) {
	token, err := svc.tokens.Generate(ctx, jwt.PasswordReset, user.ID, "")
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to generate reset token", "user_id", user.ID, "err", err)
		return "", err
	}
	return svc.backendURL + "/auth/resetPassword/" + token, nil
}

// RequestPasswordReset mails a reset link when identifier names a user.
// Unknown identifiers succeed silently.
func (svc *AccountService) RequestPasswordReset(ctx context.Context, identifier string) error {
	log := logger.FromContext(ctx)

	user, err := svc.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Infow("password reset for unknown identifier", "identifier", identifier)
			return nil
		}
		return err
	}

	resetURL, err := svc.GenerateResetPasswordURL(ctx, user)
	if err != nil {
		return err
	}

	msg, err := mailer.BuildResetPasswordEmail(mailer.ResetPasswordData{
		Name:     user.DisplayName(),
		Email:    user.Email,
		ResetURL: resetURL,
	})
	if err != nil {
		log.Warnw("failed to build reset email", "user_id", user.ID, "err", err)
		return nil
	}
	svc.send(ctx, &msg)
	return nil
}

// ResetPassword sets a new password for the user named by a reset token.
func (svc *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := logger.FromContext(ctx)

	claims, err := svc.tokens.GetClaims(ctx, jwt.PasswordReset, token)
	if err != nil {
		log.Errorw("reset token rejected", "err", err)
		return ErrInvalidToken
	}

	user, err := svc.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Errorw("reset token names unknown user", "user_id", claims.UserID)
			return ErrInvalidToken
		}
		return err
	}

	return svc.storePassword(ctx, user, newPassword)
}

// GenerateSessionToken issues a session token carrying the user id and username.
func (svc *AccountService) GenerateSessionToken(ctx context.Context, user *models.User) (string, error) {
	token, err := svc.tokens.Generate(ctx, jwt.Session, user.ID, user.Username)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to generate session token", "user_id", user.ID, "err", err)
		return "", err
	}
	return token, nil
}

func (svc *AccountService) ToAuthResponse(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	token, err := svc.GenerateSessionToken(ctx, user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		ID:       user.ID,
		Email:    user.Email,
		Verified: user.Verified,
		Token:    token,
	}, nil
}

// setEmail is the only way an email is assigned. When the address is new or
// changed it resets verified, stores a fresh confirmation token and returns
// the verification email to send once the user is persisted.
func (svc *AccountService) setEmail(ctx context.Context, user *models.User, email string) (*mailer.Message, error) {
	log := logger.FromContext(ctx)

	email = models.NormalizeIdentifier(email)
	if email == user.Email && user.EmailToken != "" {
		return nil, nil
	}

	token, err := svc.tokens.Generate(ctx, jwt.EmailConfirmation, user.ID, "")
	if err != nil {
		log.Errorw("failed to generate email token", "user_id", user.ID, "err", err)
		return nil, err
	}

	user.Email = email
	user.Verified = false
	user.EmailToken = token

	msg, err := mailer.BuildVerificationEmail(mailer.VerificationData{
		Name:            user.DisplayName(),
		Email:           email,
		VerificationURL: svc.backendURL + "/auth/verify-email/" + token,
	})
	if err != nil {
		log.Warnw("failed to build verification email", "user_id", user.ID, "err", err)
		return nil, nil
	}
	return &msg, nil
}

func (svc *AccountService) storePassword(ctx context.Context, user *models.User, plaintext string) error {
	log := logger.FromContext(ctx)

	if err := user.SetPassword(plaintext); err != nil {
		log.Errorw("failed to hash password", "err", err)
		return err
	}
	user.UpdatedAt = svc.now()

	if err := svc.writer.Update(ctx, user); err != nil {
		log.Errorw("failed to update password", "user_id", user.ID, "err", err)
		return err
	}
	svc.invalidate(ctx, user.ID)
	return nil
}

// send hands msg to the mailer. Failures are logged and never returned.
func (svc *AccountService) send(ctx context.Context, msg *mailer.Message) {
	if msg == nil || svc.mailer == nil {
		return
	}
	if err := svc.mailer.Send(ctx, *msg); err != nil {
		logger.FromContext(ctx).Warnw("failed to send email", "kind", msg.Kind, "err", err)
	}
}

func (svc *AccountService) invalidate(ctx context.Context, id uuid.UUID) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Warnw("profile cache invalidation failed", "user_id", id, "err", err)
	}
}
