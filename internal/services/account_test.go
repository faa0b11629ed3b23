package services_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-social-network/internal/jwt"
	"github.com/sbilibin2017/gw-social-network/internal/mailer"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	backendURL  = "http://localhost:8080/api"
	frontendURL = "http://localhost:3000"
)

func newTestTokens() *jwt.JWT {
	return jwt.New(
		jwt.WithSecretKey(jwt.EmailConfirmation, "email-secret"),
		jwt.WithSecretKey(jwt.PasswordReset, "reset-secret"),
		jwt.WithSecretKey(jwt.Session, "session-secret"),
	)
}

type accountMocks struct {
	reader *services.MockUserReader
	writer *services.MockUserWriter
	mailer *services.MockMailer
	cache  *services.MockProfileCache
}

func newAccountService(t *testing.T, tokens services.TokenIssuer) (*services.AccountService, accountMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := accountMocks{
		reader: services.NewMockUserReader(ctrl),
		writer: services.NewMockUserWriter(ctrl),
		mailer: services.NewMockMailer(ctrl),
		cache:  services.NewMockProfileCache(ctrl),
	}
	svc := services.NewAccountService(m.reader, m.writer, tokens, m.mailer, m.cache, backendURL+"/", frontendURL)
	return svc, m
}

// storedUser builds a persisted user with password pw123 and a valid email token.
func storedUser(t *testing.T, tokens *jwt.JWT, username, email string) *models.User {
	t.Helper()
	u := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Avatar:   models.DefaultAvatar,
		Since:    time.Now().UTC(),
	}
	require.NoError(t, u.SetPassword("pw123"))
	token, err := tokens.Generate(context.Background(), jwt.EmailConfirmation, u.ID, "")
	require.NoError(t, err)
	u.EmailToken = token
	return u
}

func TestAccountService_CreateNew(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokens()

	t.Run("persists then mails verification link", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)

		var created *models.User
		gomock.InOrder(
			m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, u *models.User) error {
					created = u
					return nil
				}),
			m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, msg mailer.Message) error {
					assert.Equal(t, mailer.KindVerification, msg.Kind)
					assert.Equal(t, "bob@x.com", msg.To)
					assert.Equal(t, "Bob B", msg.Name)
					assert.Contains(t, msg.Body, backendURL+"/auth/verify-email/"+created.EmailToken)
					return nil
				}),
		)

		user, err := svc.CreateNew(ctx, services.NewUser{
			Username: " Bob ",
			Email:    "BOB@x.com",
			FullName: "Bob B",
			Password: "pw123",
		})
		require.NoError(t, err)
		assert.Same(t, created, user)

		assert.Equal(t, "bob", user.Username)
		assert.Equal(t, "bob@x.com", user.Email)
		assert.Equal(t, models.DefaultAvatar, user.Avatar)
		assert.False(t, user.Verified)
		assert.NotEmpty(t, user.PasswordSalt)
		assert.NotEqual(t, "pw123", user.PasswordHash)
		assert.True(t, user.ValidPassword("pw123"))
		assert.False(t, user.Since.IsZero())

		claims, err := tokens.GetClaims(ctx, jwt.EmailConfirmation, user.EmailToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("duplicate identifier is returned and nothing is mailed", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).Return(services.ErrDuplicateIdentifier)

		_, err := svc.CreateNew(ctx, services.NewUser{Username: "bob", Email: "bob@x.com", Password: "pw123"})
		assert.ErrorIs(t, err, services.ErrDuplicateIdentifier)
	})

	t.Run("mailer failure does not fail creation", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		user, err := svc.CreateNew(ctx, services.NewUser{Username: "bob", Email: "bob@x.com", Password: "pw123"})
		require.NoError(t, err)
		assert.NotNil(t, user)
	})

	t.Run("empty identifiers are rejected", func(t *testing.T) {
		svc, _ := newAccountService(t, tokens)

		_, err := svc.CreateNew(ctx, services.NewUser{Username: "  ", Email: "bob@x.com", Password: "pw123"})
		assert.ErrorIs(t, err, services.ErrInvalidInput)

		_, err = svc.CreateNew(ctx, services.NewUser{Username: "bob", Email: "", Password: "pw123"})
		assert.ErrorIs(t, err, services.ErrInvalidInput)
	})

	t.Run("token failure stops creation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		issuer := services.NewMockTokenIssuer(ctrl)
		issuer.EXPECT().Generate(gomock.Any(), jwt.EmailConfirmation, gomock.Any(), "").Return("", errors.New("sign failed"))

		svc, _ := newAccountService(t, issuer)
		_, err := svc.CreateNew(ctx, services.NewUser{Username: "bob", Email: "bob@x.com", Password: "pw123"})
		assert.EqualError(t, err, "sign failed")
	})
}

func TestAccountService_Register(t *testing.T) {
	tokens := newTestTokens()
	svc, m := newAccountService(t, tokens)
	m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := svc.Register(context.Background(), services.NewUser{Username: "bob", Email: "bob@x.com", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", resp.Email)
	assert.False(t, resp.Verified)

	claims, err := tokens.GetClaims(context.Background(), jwt.Session, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, claims.UserID)
	assert.Equal(t, "bob", claims.Username)
}

func TestAccountService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokens()
	bob := storedUser(t, tokens, "bob", "bob@x.com")

	tests := []struct {
		name       string
		identifier string
		password   string
		found      *models.User
		readerErr  error
		wantErr    error
	}{
		{name: "by email", identifier: "Bob@X.com", password: "pw123", found: bob},
		{name: "by username", identifier: "bob", password: "pw123", found: bob},
		{name: "wrong password", identifier: "bob", password: "nope", found: bob, wantErr: services.ErrInvalidCredentials},
		{name: "unknown identifier", identifier: "eve", password: "pw123", readerErr: services.ErrNotFound, wantErr: services.ErrInvalidCredentials},
		{name: "store failure", identifier: "bob", password: "pw123", readerErr: errors.New("db down"), wantErr: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newAccountService(t, tokens)
			m.reader.EXPECT().
				GetByIdentifier(gomock.Any(), models.NormalizeIdentifier(tt.identifier)).
				Return(tt.found, tt.readerErr)

			resp, err := svc.Login(ctx, tt.identifier, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, bob.ID, resp.ID)
			assert.NotEmpty(t, resp.Token)
		})
	}
}

func TestAccountService_VerifyEmail(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokens()

	t.Run("success", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")

		m.reader.EXPECT().GetByID(gomock.Any(), bob.ID).Return(bob, nil)
		m.writer.EXPECT().MarkVerified(gomock.Any(), bob.ID).Return(nil)
		m.cache.EXPECT().Delete(gomock.Any(), bob.ID).Return(nil)

		target, err := svc.VerifyEmail(ctx, bob.EmailToken)
		require.NoError(t, err)
		assert.True(t, bob.Verified)

		prefix := frontendURL + "/server-login?success=true&token="
		require.True(t, strings.HasPrefix(target, prefix), target)

		u, err := url.Parse(target)
		require.NoError(t, err)
		claims, err := tokens.GetClaims(ctx, jwt.Session, u.Query().Get("token"))
		require.NoError(t, err)
		assert.Equal(t, bob.ID, claims.UserID)
		assert.Equal(t, "bob", claims.Username)
	})

	t.Run("same token twice succeeds while stored token is unchanged", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")

		m.reader.EXPECT().GetByID(gomock.Any(), bob.ID).Return(bob, nil).Times(2)
		m.writer.EXPECT().MarkVerified(gomock.Any(), bob.ID).Return(nil).Times(2)
		m.cache.EXPECT().Delete(gomock.Any(), bob.ID).Return(nil).Times(2)

		_, err := svc.VerifyEmail(ctx, bob.EmailToken)
		require.NoError(t, err)
		_, err = svc.VerifyEmail(ctx, bob.EmailToken)
		require.NoError(t, err)
	})

	otherSecret := jwt.New(
		jwt.WithSecretKey(jwt.EmailConfirmation, "someone-elses-secret"),
		jwt.WithSecretKey(jwt.PasswordReset, "reset-secret"),
		jwt.WithSecretKey(jwt.Session, "session-secret"),
	)
	expired := jwt.New(
		jwt.WithSecretKey(jwt.EmailConfirmation, "email-secret"),
		jwt.WithExpiration(jwt.EmailConfirmation, -time.Minute),
	)

	t.Run("rejected tokens", func(t *testing.T) {
		bob := storedUser(t, tokens, "bob", "bob@x.com")

		forged, err := otherSecret.Generate(ctx, jwt.EmailConfirmation, bob.ID, "")
		require.NoError(t, err)
		stale, err := expired.Generate(ctx, jwt.EmailConfirmation, bob.ID, "")
		require.NoError(t, err)
		resetToken, err := tokens.Generate(ctx, jwt.PasswordReset, bob.ID, "")
		require.NoError(t, err)

		for name, token := range map[string]string{
			"wrong secret":  forged,
			"expired":       stale,
			"wrong purpose": resetToken,
			"malformed":     "not-a-token",
		} {
			t.Run(name, func(t *testing.T) {
				svc, _ := newAccountService(t, tokens)
				_, err := svc.VerifyEmail(ctx, token)
				assert.ErrorIs(t, err, services.ErrInvalidToken)
			})
		}
	})

	t.Run("token superseded by a newer one", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")
		old := bob.EmailToken
		newer, err := tokens.Generate(ctx, jwt.EmailConfirmation, bob.ID, "")
		require.NoError(t, err)
		bob.EmailToken = newer

		m.reader.EXPECT().GetByID(gomock.Any(), bob.ID).Return(bob, nil)

		_, err = svc.VerifyEmail(ctx, old)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
		assert.False(t, bob.Verified)
	})

	t.Run("token for another identity", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")
		alice := storedUser(t, tokens, "alice", "alice@x.com")

		m.reader.EXPECT().GetByID(gomock.Any(), alice.ID).Return(alice, nil)

		aliceToken, err := tokens.Generate(ctx, jwt.EmailConfirmation, alice.ID, "")
		require.NoError(t, err)
		alice.EmailToken = bob.EmailToken

		_, err = svc.VerifyEmail(ctx, aliceToken)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		ghost := storedUser(t, tokens, "ghost", "ghost@x.com")
		m.reader.EXPECT().GetByID(gomock.Any(), ghost.ID).Return(nil, services.ErrNotFound)

		_, err := svc.VerifyEmail(ctx, ghost.EmailToken)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})
}

func TestAccountService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokens()
	dob := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("same email keeps verification", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")
		bob.Verified = true
		token := bob.EmailToken

		m.writer.EXPECT().Update(gomock.Any(), bob).Return(nil)
		m.cache.EXPECT().Delete(gomock.Any(), bob.ID).Return(nil)

		profile, err := svc.UpdateProfile(ctx, bob, models.ProfileUpdate{
			FullName: "Robert",
			Username: "Bobby",
			Email:    "BOB@x.com",
			DOB:      &dob,
			Gender:   "m",
		})
		require.NoError(t, err)
		assert.Equal(t, "bobby", profile.Username)
		assert.Equal(t, "Robert", profile.FullName)
		assert.Equal(t, "m", profile.Gender)
		assert.Empty(t, profile.Address)
		assert.True(t, profile.Verified)
		assert.Equal(t, token, bob.EmailToken)
		assert.Equal(t, &dob, bob.DOB)
	})

	t.Run("changed email resets verification and mails", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")
		bob.Verified = true
		old := bob.EmailToken

		gomock.InOrder(
			m.writer.EXPECT().Update(gomock.Any(), bob).Return(nil),
			m.cache.EXPECT().Delete(gomock.Any(), bob.ID).Return(nil),
			m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, msg mailer.Message) error {
					assert.Equal(t, "new@x.com", msg.To)
					assert.Contains(t, msg.Body, "/auth/verify-email/"+bob.EmailToken)
					return nil
				}),
		)

		profile, err := svc.UpdateProfile(ctx, bob, models.ProfileUpdate{Username: "bob", Email: "New@x.com"})
		require.NoError(t, err)
		assert.Equal(t, "new@x.com", profile.Email)
		assert.False(t, profile.Verified)
		assert.NotEqual(t, old, bob.EmailToken)

		claims, err := tokens.GetClaims(ctx, jwt.EmailConfirmation, bob.EmailToken)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, claims.UserID)
	})

	t.Run("empty username or email is rejected", func(t *testing.T) {
		svc, _ := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")

		_, err := svc.UpdateProfile(ctx, bob, models.ProfileUpdate{Username: "", Email: "bob@x.com"})
		assert.ErrorIs(t, err, services.ErrInvalidInput)
		_, err = svc.UpdateProfile(ctx, bob, models.ProfileUpdate{Username: "bob"})
		assert.ErrorIs(t, err, services.ErrInvalidInput)
	})

	t.Run("duplicate identifier", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")
		m.writer.EXPECT().Update(gomock.Any(), bob).Return(services.ErrDuplicateIdentifier)

		_, err := svc.UpdateProfile(ctx, bob, models.ProfileUpdate{Username: "alice", Email: "bob@x.com"})
		assert.ErrorIs(t, err, services.ErrDuplicateIdentifier)
	})
}

func TestAccountService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokens()

	t.Run("success regenerates salt", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")
		oldSalt := bob.PasswordSalt

		m.writer.EXPECT().Update(gomock.Any(), bob).Return(nil)
		m.cache.EXPECT().Delete(gomock.Any(), bob.ID).Return(errors.New("redis down"))

		require.NoError(t, svc.ChangePassword(ctx, bob, "pw123", "new-secret"))
		assert.NotEqual(t, oldSalt, bob.PasswordSalt)
		assert.True(t, bob.ValidPassword("new-secret"))
		assert.False(t, bob.ValidPassword("pw123"))
	})

	t.Run("wrong current password", func(t *testing.T) {
		svc, _ := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")

		err := svc.ChangePassword(ctx, bob, "wrong", "new-secret")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.True(t, bob.ValidPassword("pw123"))
	})
}

func TestAccountService_GetPublicProfile(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokens()
	bob := storedUser(t, tokens, "bob", "bob@x.com")

	t.Run("cache hit", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		m.cache.EXPECT().Get(gomock.Any(), bob.ID).Return(bob.PublicProfile(), nil)

		profile, err := svc.GetPublicProfile(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", profile.Username)
	})

	t.Run("cache miss fills cache", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		gomock.InOrder(
			m.cache.EXPECT().Get(gomock.Any(), bob.ID).Return(nil, services.ErrNotFound),
			m.reader.EXPECT().GetByID(gomock.Any(), bob.ID).Return(bob, nil),
			m.cache.EXPECT().Set(gomock.Any(), bob.PublicProfile()).Return(nil),
		)

		profile, err := svc.GetPublicProfile(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, bob.PublicProfile(), profile)
	})

	t.Run("cache failure falls back to store", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		m.cache.EXPECT().Get(gomock.Any(), bob.ID).Return(nil, errors.New("redis down"))
		m.reader.EXPECT().GetByID(gomock.Any(), bob.ID).Return(bob, nil)
		m.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		profile, err := svc.GetPublicProfile(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, profile.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		id := uuid.New()
		m.cache.EXPECT().Get(gomock.Any(), id).Return(nil, services.ErrNotFound)
		m.reader.EXPECT().GetByID(gomock.Any(), id).Return(nil, services.ErrNotFound)

		_, err := svc.GetPublicProfile(ctx, id)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("without cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reader := services.NewMockUserReader(ctrl)
		reader.EXPECT().GetByID(gomock.Any(), bob.ID).Return(bob, nil)

		svc := services.NewAccountService(reader, services.NewMockUserWriter(ctrl), tokens, nil, nil, backendURL, frontendURL)
		profile, err := svc.GetPublicProfile(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, profile.ID)
	})
}

func TestAccountService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokens()

	t.Run("GenerateResetPasswordURL", func(t *testing.T) {
		svc, _ := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")

		link, err := svc.GenerateResetPasswordURL(ctx, bob)
		require.NoError(t, err)

		prefix := backendURL + "/auth/resetPassword/"
		require.True(t, strings.HasPrefix(link, prefix), link)
		claims, err := tokens.GetClaims(ctx, jwt.PasswordReset, strings.TrimPrefix(link, prefix))
		require.NoError(t, err)
		assert.Equal(t, bob.ID, claims.UserID)
	})

	t.Run("RequestPasswordReset mails known users", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")

		m.reader.EXPECT().GetByIdentifier(gomock.Any(), "bob@x.com").Return(bob, nil)
		m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, msg mailer.Message) error {
				assert.Equal(t, mailer.KindResetPassword, msg.Kind)
				assert.Equal(t, "bob@x.com", msg.To)
				assert.Contains(t, msg.Body, backendURL+"/auth/resetPassword/")
				return nil
			})

		assert.NoError(t, svc.RequestPasswordReset(ctx, "Bob@x.com"))
	})

	t.Run("RequestPasswordReset ignores unknown identifiers", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		m.reader.EXPECT().GetByIdentifier(gomock.Any(), "eve").Return(nil, services.ErrNotFound)

		assert.NoError(t, svc.RequestPasswordReset(ctx, "eve"))
	})

	t.Run("ResetPassword", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")
		token, err := tokens.Generate(ctx, jwt.PasswordReset, bob.ID, "")
		require.NoError(t, err)

		m.reader.EXPECT().GetByID(gomock.Any(), bob.ID).Return(bob, nil)
		m.writer.EXPECT().Update(gomock.Any(), bob).Return(nil)
		m.cache.EXPECT().Delete(gomock.Any(), bob.ID).Return(nil)

		require.NoError(t, svc.ResetPassword(ctx, token, "brand-new"))
		assert.True(t, bob.ValidPassword("brand-new"))
	})

	t.Run("ResetPassword rejects other purposes", func(t *testing.T) {
		svc, _ := newAccountService(t, tokens)
		bob := storedUser(t, tokens, "bob", "bob@x.com")

		assert.ErrorIs(t, svc.ResetPassword(ctx, bob.EmailToken, "brand-new"), services.ErrInvalidToken)
		assert.ErrorIs(t, svc.ResetPassword(ctx, "garbage", "brand-new"), services.ErrInvalidToken)
	})

	t.Run("ResetPassword for deleted user", func(t *testing.T) {
		svc, m := newAccountService(t, tokens)
		id := uuid.New()
		token, err := tokens.Generate(ctx, jwt.PasswordReset, id, "")
		require.NoError(t, err)
		m.reader.EXPECT().GetByID(gomock.Any(), id).Return(nil, services.ErrNotFound)

		assert.ErrorIs(t, svc.ResetPassword(ctx, token, "brand-new"), services.ErrInvalidToken)
	})
}

// Register bob, verify with the mailed token, then decode the session token.
func TestAccountService_RegisterAndVerify(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokens()
	svc, m := newAccountService(t, tokens)

	var stored *models.User
	m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, u *models.User) error {
			stored = u
			return nil
		})
	m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := svc.Register(ctx, services.NewUser{Username: "bob", Email: "bob@x.com", Password: "pw123"})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, resp.Verified)
	assert.NotEmpty(t, stored.PasswordSalt)
	assert.NotEmpty(t, stored.EmailToken)

	m.reader.EXPECT().GetByID(gomock.Any(), stored.ID).Return(stored, nil).AnyTimes()
	m.writer.EXPECT().MarkVerified(gomock.Any(), stored.ID).Return(nil)
	m.cache.EXPECT().Delete(gomock.Any(), stored.ID).Return(nil)

	target, err := svc.VerifyEmail(ctx, stored.EmailToken)
	require.NoError(t, err)
	assert.True(t, stored.Verified)

	u, err := url.Parse(target)
	require.NoError(t, err)
	claims, err := tokens.GetClaims(ctx, jwt.Session, u.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, "bob", claims.Username)

	user, err := svc.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.True(t, user.Verified)
}
