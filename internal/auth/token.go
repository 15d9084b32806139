package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/SAP-F-2025/student-admin-service/internal/models"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token is expired")
)

// SessionClaims is the payload of a login session token.
type SessionClaims struct {
	UserID uint            `json:"id"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AssignmentClaims grants a student time-boxed access to a single task.
type AssignmentClaims struct {
	StudentID uint   `json:"studentId"`
	TaskID    string `json:"taskId"`
	jwt.RegisteredClaims
}

// SessionIssuer signs and verifies session tokens. Tokens are stateless
// and never persisted.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	return &SessionIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *SessionIssuer) Issue(userID uint, role models.UserRole) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (i *SessionIssuer) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// AssignmentIssuer signs and verifies assignment tokens. A separate
// secret keeps the two token families from validating against each
// other.
type AssignmentIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewAssignmentIssuer(secret string, ttl time.Duration) *AssignmentIssuer {
	return &AssignmentIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *AssignmentIssuer) Issue(studentID uint, taskID string) (string, error) {
	now := time.Now()
	claims := AssignmentClaims{
		StudentID: studentID,
		TaskID:    taskID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign assignment token: %w", err)
	}
	return signed, nil
}

func (i *AssignmentIssuer) Verify(tokenString string) (*AssignmentClaims, error) {
	claims := &AssignmentClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
