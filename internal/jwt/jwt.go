package jwt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Purpose selects the secret and lifetime a token is signed with.
type Purpose int

const (
	EmailConfirmation Purpose = iota + 1 // proves control of an email address
	PasswordReset                        // authorizes a single password reset
	Session                              // authenticates API requests
)

// Purposes lists every supported purpose.
var Purposes = []Purpose{EmailConfirmation, PasswordReset, Session}

func (p Purpose) String() string {
	switch p {
	case EmailConfirmation:
		return "email-confirmation"
	case PasswordReset:
		return "password-reset"
	case Session:
		return "session"
	default:
		return fmt.Sprintf("purpose(%d)", int(p))
	}
}

// Default token lifetimes.
const (
	DefaultEmailConfirmationExp = time.Hour
	DefaultPasswordResetExp     = time.Hour
	DefaultSessionExp           = 365 * 24 * time.Hour
)

var (
	// ErrInvalidToken is returned for every token that fails verification,
	// whatever the reason.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnknownPurpose is returned when no key is configured for a purpose.
	ErrUnknownPurpose = errors.New("unknown token purpose")
)

// Claims is the token payload.
type Claims struct {
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username,omitempty"`
	jwt.RegisteredClaims
}

type signingKey struct {
	secret []byte
	exp    time.Duration
}

// JWT issues and verifies tokens for every Purpose.
type JWT struct {
	keys map[Purpose]signingKey
}

// Opt configures a JWT.
type Opt func(*JWT)

// WithSecretKey sets the signing secret for p.
func WithSecretKey(p Purpose, secret string) Opt {
	return func(j *JWT) {
		k := j.keys[p]
		k.secret = []byte(secret)
		j.keys[p] = k
	}
}

// WithExpiration sets the token lifetime for p.
func WithExpiration(p Purpose, exp time.Duration) Opt {
	return func(j *JWT) {
		k := j.keys[p]
		k.exp = exp
		j.keys[p] = k
	}
}

// New creates a JWT with default lifetimes and the given options applied.
func New(opts ...Opt) *JWT {
	j := &JWT{
		keys: map[Purpose]signingKey{
			EmailConfirmation: {exp: DefaultEmailConfirmationExp},
			PasswordReset:     {exp: DefaultPasswordResetExp},
			Session:           {exp: DefaultSessionExp},
		},
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// CheckSecrets fails unless every purpose has its own non-empty secret.
func (j *JWT) CheckSecrets() error {
	seen := make(map[string]Purpose, len(Purposes))
	for _, p := range Purposes {
		k := j.keys[p]
		if len(k.secret) == 0 {
			return fmt.Errorf("%s secret is empty", p)
		}
		if other, ok := seen[string(k.secret)]; ok {
			return fmt.Errorf("%s and %s share a secret", other, p)
		}
		seen[string(k.secret)] = p
	}
	return nil
}

// Generate signs a token for p. username is only embedded when non-empty.
func (j *JWT) Generate(ctx context.Context, p Purpose, userID uuid.UUID, username string) (string, error) {
	k, ok := j.keys[p]
	if !ok || len(k.secret) == 0 {
		return "", ErrUnknownPurpose
	}

	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Audience:  jwt.ClaimStrings{p.String()},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(k.exp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(k.secret)
}

// GetClaims verifies tokenString against the key of p and returns its claims.
// Bad signature, malformed input, expiry and purpose mismatch all yield
// ErrInvalidToken.
func (j *JWT) GetClaims(ctx context.Context, p Purpose, tokenString string) (*Claims, error) {
	k, ok := j.keys[p]
	if !ok || len(k.secret) == 0 {
		return nil, ErrUnknownPurpose
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return k.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(p.String()),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Validate checks that tokenString is a valid session token.
func (j *JWT) Validate(ctx context.Context, tokenString string) error {
	_, err := j.GetClaims(ctx, Session, tokenString)
	return err
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying the session claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the session claims stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}
