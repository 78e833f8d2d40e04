package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("secret")

func TestJWTUtil_IssueAccessToken(t *testing.T) {
	jwtUtil := NewJWTUtil(testSecret, 30*time.Minute)

	tokenString, err := jwtUtil.IssueAccessToken("Jo")

	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := jwtUtil.Verify(tokenString)
	require.NoError(t, err)
	sub, err := Subject(claims)
	assert.NoError(t, err)
	assert.Equal(t, "Jo", sub)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp.Time, 5*time.Second)
}

func TestJWTUtil_Issue_DefaultTTL(t *testing.T) {
	jwtUtil := NewJWTUtil(testSecret, time.Hour)

	tokenString, err := jwtUtil.Issue(jwt.MapClaims{"sub": "Jo"}, 0)
	require.NoError(t, err)

	claims, err := jwtUtil.Verify(tokenString)
	require.NoError(t, err)
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), exp.Time, 5*time.Second)
}

func TestJWTUtil_Issue_KeepsExtraClaimsAndDoesNotMutateInput(t *testing.T) {
	jwtUtil := NewJWTUtil(testSecret, time.Hour)
	in := jwt.MapClaims{"sub": "Jo", "scope": "contacts"}

	tokenString, err := jwtUtil.Issue(in, time.Minute)
	require.NoError(t, err)

	_, hasExp := in["exp"]
	assert.False(t, hasExp)

	claims, err := jwtUtil.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "contacts", claims["scope"])
	_, hasIat := claims["iat"]
	assert.True(t, hasIat)
}

func TestJWTUtil_Verify_InvalidToken(t *testing.T) {
	jwtUtil := NewJWTUtil(testSecret, time.Hour)

	_, err := jwtUtil.Verify("invalid.token.string")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = jwtUtil.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTUtil_ExpiredToken(t *testing.T) {
	jwtUtil := NewJWTUtil(testSecret, 20*time.Minute)
	jwtUtil.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tokenString, err := jwtUtil.IssueAccessToken("Jo")
	require.NoError(t, err)

	claims, err := jwtUtil.Verify(tokenString)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err = jwtUtil.Decode(tokenString)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTUtil_WrongSecret(t *testing.T) {
	jwtUtil1 := NewJWTUtil([]byte("secret1"), time.Hour)
	jwtUtil2 := NewJWTUtil([]byte("secret2"), time.Hour)

	tokenString, _ := jwtUtil1.IssueAccessToken("Jo")

	_, err := jwtUtil2.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = jwtUtil2.Decode(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTUtil_InvalidSigningMethod(t *testing.T) {
	jwtUtil := NewJWTUtil(testSecret, time.Hour)
	claims := jwt.MapClaims{
		"sub": "Jo",
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
	// Same secret, HMAC keys are interchangeable between HS256 and HS384
	tokenString, err := token.SignedString(testSecret)
	require.NoError(t, err)

	_, err = jwtUtil.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = jwtUtil.Decode(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTUtil_MissingExpiration(t *testing.T) {
	jwtUtil := NewJWTUtil(testSecret, time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "Jo"})
	tokenString, err := token.SignedString(testSecret)
	require.NoError(t, err)

	_, err = jwtUtil.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTUtil_DecodeValidToken(t *testing.T) {
	jwtUtil := NewJWTUtil(testSecret, time.Hour)
	tokenString, _ := jwtUtil.IssueAccessToken("Jo")

	claims, err := jwtUtil.Decode(tokenString)
	require.NoError(t, err)
	sub, err := Subject(claims)
	assert.NoError(t, err)
	assert.Equal(t, "Jo", sub)
}

func TestSubject_Missing(t *testing.T) {
	_, err := Subject(jwt.MapClaims{})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = Subject(jwt.MapClaims{"sub": ""})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateSecret(t *testing.T) {
	s1, err := GenerateSecret()
	require.NoError(t, err)
	s2, err := GenerateSecret()
	require.NoError(t, err)

	assert.Len(t, s1, 2*secretSize)
	assert.NotEqual(t, s1, s2)
}
