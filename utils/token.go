package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	config "school-appointment-api/configs"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// SignInTokenTTL bounds how long a teacher sign-in link stays usable.
const SignInTokenTTL = 10 * time.Minute

// NewSignInToken issues the short-lived token embedded in a teacher's
// sign-in link. The token is also persisted on the teacher record so a link
// can only be redeemed once.
func NewSignInToken(teacherID uuid.UUID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": teacherID.String(),
		"email":   email,
		"role":    "teacher",
		"exp":     time.Now().Add(SignInTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}

type SignInClaims struct {
	TeacherID uuid.UUID
	Email     string
}

func ParseSignInToken(tokenString string) (*SignInClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != "teacher" {
		return nil, ErrInvalidToken
	}
	idStr, _ := claims["user_id"].(string)
	teacherID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return &SignInClaims{TeacherID: teacherID, Email: email}, nil
}
