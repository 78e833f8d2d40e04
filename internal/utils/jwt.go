package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// DefaultTokenTTL is applied when Issue is called without a positive ttl
const DefaultTokenTTL = 20 * time.Minute

// secretSize is the number of random bytes behind a generated secret
const secretSize = 16

// JWTUtil issues and verifies HS256 bearer tokens. It is immutable after construction.
type JWTUtil struct {
	secretKey []byte
	accessTTL time.Duration
	parser    *jwt.Parser
	now       func() time.Time
}

// NewJWTUtil creates a new JWTUtil. accessTTL is the lifetime of tokens minted at sign-in.
func NewJWTUtil(secretKey []byte, accessTTL time.Duration) *JWTUtil {
	key := make([]byte, len(secretKey))
	copy(key, secretKey)
	return &JWTUtil{
		secretKey: key,
		accessTTL: accessTTL,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
		now: time.Now,
	}
}

// GenerateSecret returns a random hex secret. Tokens signed with it do not
// survive a process restart.
func GenerateSecret() (string, error) {
	b := make([]byte, secretSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Issue signs a copy of claims with an "exp" of now+ttl merged in.
// A non-positive ttl falls back to DefaultTokenTTL.
func (ju *JWTUtil) Issue(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := ju.now()

	toEncode := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		toEncode[k] = v
	}
	toEncode["exp"] = jwt.NewNumericDate(now.Add(ttl))
	if _, ok := toEncode["iat"]; !ok {
		toEncode["iat"] = jwt.NewNumericDate(now)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, toEncode)
	tokenString, err := token.SignedString(ju.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// IssueAccessToken mints the sign-in token; the subject is the user's name.
func (ju *JWTUtil) IssueAccessToken(name string) (string, error) {
	return ju.Issue(jwt.MapClaims{"sub": name}, ju.accessTTL)
}

// Verify is used on the request authorization path. Every failure,
// expiry included, is reported as ErrInvalidToken.
func (ju *JWTUtil) Verify(tokenString string) (jwt.MapClaims, error) {
	claims, err := ju.parse(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Decode tells an expired token (ErrExpiredToken) apart from any other failure (ErrInvalidToken).
func (ju *JWTUtil) Decode(tokenString string) (jwt.MapClaims, error) {
	claims, err := ju.parse(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Subject returns the non-empty "sub" claim.
func Subject(claims jwt.MapClaims) (string, error) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

func (ju *JWTUtil) parse(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := ju.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return ju.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}
