package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gravitational/trace"
)

var (
	jwtSecret []byte
	jwtExpiry time.Duration
)

// Init must be called once at startup before tokens are issued or verified.
func Init(secret string, expiryHours int) error {
	if secret == "" {
		return trace.BadParameter("jwt secret is not configured")
	}
	if expiryHours <= 0 {
		expiryHours = 72
	}
	jwtSecret = []byte(secret)
	jwtExpiry = time.Duration(expiryHours) * time.Hour
	return nil
}

func GenerateJWT(userID uint, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(jwtExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, trace.AccessDenied("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, trace.AccessDenied("invalid token claims")
	}

	return claims, nil
}
