package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const tokenIssuer = "luxury_realty"

var (
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenInvalid   = errors.New("invalid token")
)

type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// GenerateJWT signs an HS256 token whose subject is userID.
func GenerateJWT(key []byte, userID, email string, ttl time.Duration, now time.Time) (string, error) {
	claims := &Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			ExpiresAt: now.Add(ttl).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ValidateJWT(key []byte, tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return key, nil
	})

	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) {
			switch {
			case vErr.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				return nil, ErrTokenSignature
			case vErr.Errors&jwt.ValidationErrorExpired != 0:
				return nil, ErrTokenExpired
			}
		}
		return nil, err
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
