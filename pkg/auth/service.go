package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	Sign(userId string) (tokenString string, expiresAt time.Time, err error)
	Parse(tokenString string) (string, error)
	JWTAuth() *jwtauth.JWTAuth
}

type service struct {
	jwtAuth         *jwtauth.JWTAuth
	sessionDuration time.Duration
}

func NewService(secret []byte, sessionDuration time.Duration) Service {
	return &service{
		jwtAuth:         jwtauth.New("HS256", secret, nil),
		sessionDuration: sessionDuration,
	}
}

func (s *service) Sign(userId string) (tokenString string, expiresAt time.Time, err error) {
	now := time.Now()
	expiresAt = now.Add(s.sessionDuration)
	claims := map[string]interface{}{
		jwt.SubjectKey:    userId,
		jwt.IssuedAtKey:   now,
		jwt.ExpirationKey: expiresAt,
	}

	_, tokenString, err = s.jwtAuth.Encode(claims)
	if err != nil {
		return "", expiresAt, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

func (s *service) Parse(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(s.jwtAuth, tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return subject(token)
}

func (s *service) JWTAuth() *jwtauth.JWTAuth {
	return s.jwtAuth
}

// ViewerIdFromContext returns the subject of the token verified for the request.
func ViewerIdFromContext(ctx context.Context) (string, error) {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if token == nil {
		return "", ErrUnauthenticated
	}
	if err := jwt.Validate(token); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return subject(token)
}

func subject(token jwt.Token) (string, error) {
	userId := token.Subject()
	if len(userId) == 0 {
		return "", ErrSubjectMissing
	}
	return userId, nil
}
