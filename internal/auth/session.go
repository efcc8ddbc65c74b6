package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const issuer = "cashtrackr"

type SessionClaims struct {
	ID uint `json:"id"`
	jwt.RegisteredClaims
}

// SessionTokens issues and verifies the signed bearer tokens handed out at login.
type SessionTokens struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
}

func NewSessionTokens(secret string, expiresIn time.Duration) *SessionTokens {
	return &SessionTokens{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

func (s *SessionTokens) Issue(userID uint) (string, error) {
	now := s.now()
	claims := SessionClaims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify returns the user id asserted by tokenString. Any parse, signature
// or expiry failure yields ErrInvalidToken.
func (s *SessionTokens) Verify(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(issuer))

	if err != nil {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == 0 {
		return 0, ErrInvalidToken
	}

	return claims.ID, nil
}
