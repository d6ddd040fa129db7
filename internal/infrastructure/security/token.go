package security

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mini-project-manager/tracker/internal/core/domain"
)

// TokenLifetime is the validity of every issued token.
const TokenLifetime = 7 * 24 * time.Hour

const bearerScheme = "Bearer"

// JWTService issues and verifies HS256 tokens signed with a server-held secret.
// Tokens are self-contained: any process with the secret can verify them.
type JWTService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Option customises a JWTService.
type Option func(*JWTService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) { s.now = now }
}

// WithIssuer sets the iss claim written and required on tokens.
func WithIssuer(issuer string) Option {
	return func(s *JWTService) { s.issuer = issuer }
}

func NewJWTService(secret string, opts ...Option) *JWTService {
	s := &JWTService{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for claims.SubjectID that expires TokenLifetime from now.
func (s *JWTService) Issue(claims domain.TokenClaims) (string, error) {
	if claims.SubjectID == "" {
		return "", domain.Processing("issue token", errors.New("empty subject"))
	}

	now := s.now()
	rc := jwt.RegisteredClaims{
		Subject:   claims.SubjectID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, rc).SignedString(s.secret)
	if err != nil {
		return "", domain.Processing("sign token", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded
// claims. Expired-but-well-formed tokens fail with domain.ErrTokenExpired;
// everything else fails with domain.ErrTokenInvalid.
func (s *JWTService) Verify(token string) (*domain.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var rc jwt.RegisteredClaims
	parsed, err := jwt.NewParser(opts...).ParseWithClaims(token, &rc, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || rc.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims := &domain.TokenClaims{SubjectID: rc.Subject}
	if rc.IssuedAt != nil {
		claims.IssuedAt = rc.IssuedAt.Time
	}
	claims.ExpiresAt = rc.ExpiresAt.Time
	return claims, nil
}

// ExtractFromHeader returns the token of an Authorization header using the
// Bearer scheme. Missing headers, other schemes and empty tokens yield ok=false.
func (s *JWTService) ExtractFromHeader(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
