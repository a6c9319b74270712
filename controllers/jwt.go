package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("token inválido")

// authClaims é o payload mínimo dos tokens emitidos pelo Login:
// sub = id do usuário, email por conveniência do front.
type authClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func signAuthToken(userID int64, email string) (string, error) {
	now := time.Now()
	claims := authClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(conf.Security.TokenTTLHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(conf.Security.JwtSecret))
}

// parseAuthToken valida assinatura e expiração e devolve (userID, email).
func parseAuthToken(tokenString string) (int64, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(conf.Security.JwtSecret), nil
	})
	if err != nil {
		return 0, "", errInvalidToken
	}

	claims, ok := token.Claims.(*authClaims)
	if !ok || !token.Valid {
		return 0, "", errInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", errInvalidToken
	}
	return userID, claims.Email, nil
}
