package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

type Service interface {
	FindUsers(ctx context.Context, options *FindOptions) ([]*User, error)
	CreateUser(ctx context.Context, options *CreateOptions) (*User, error)
	UpdateUser(ctx context.Context, userId string, options *UpdateOptions, fieldMask *UpdateFieldMask) (*User, error)
	RemoveTeam(ctx context.Context, userIds []string, teamId string) ([]*User, error)
}

type service struct {
	userRepository Repository
}

func NewService(userRepository Repository) Service {
	return &service{
		userRepository: userRepository,
	}
}

func (s *service) FindUsers(ctx context.Context, options *FindOptions) ([]*User, error) {
	return s.userRepository.FindAll(ctx, options)
}

func (s *service) CreateUser(ctx context.Context, options *CreateOptions) (*User, error) {
	user, err := processCreateUser(options)
	if err != nil {
		return nil, err
	}
	return s.userRepository.Create(ctx, user)
}

func (s *service) UpdateUser(ctx context.Context, userId string, options *UpdateOptions, fieldMask *UpdateFieldMask) (*User, error) {
	if options == nil {
		return nil, ErrUpdateOptionsRequired
	}
	if fieldMask == nil {
		return nil, ErrUpdateFieldMaskRequired
	}

	user, err := s.findUserById(ctx, userId)
	if err != nil {
		return nil, err
	}

	user.Update(options, fieldMask)
	return s.userRepository.Update(ctx, user, fieldMask)
}

// RemoveTeam drops teamId from the team list of every user in userIds. Users not on the team are
// left untouched and are not part of the result.
func (s *service) RemoveTeam(ctx context.Context, userIds []string, teamId string) ([]*User, error) {
	if len(userIds) == 0 {
		return nil, nil
	}

	users, err := s.userRepository.FindAll(ctx, &FindOptions{
		Ids: userIds,
	})
	if err != nil {
		return nil, err
	}

	var updatedUsers []*User
	for _, user := range users {
		idx := slices.Index(user.TeamIds, teamId)
		if idx == -1 {
			continue
		}

		updatedUser, err := s.userRepository.Update(ctx, &User{
			Id:      user.Id,
			TeamIds: slices.Delete(slices.Clone(user.TeamIds), idx, idx+1),
		}, &UpdateFieldMask{
			TeamIds: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to remove team from user %s: %w", user.Id, err)
		}
		updatedUsers = append(updatedUsers, updatedUser)
	}
	return updatedUsers, nil
}

func (s *service) findUserById(ctx context.Context, userId string) (*User, error) {
	users, err := s.userRepository.FindAll(ctx, &FindOptions{
		Ids: []string{userId},
	})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users[0], nil
}

func newId() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func processCreateUser(options *CreateOptions) (*User, error) {
	if options == nil {
		return nil, ErrCreateOptionsRequired
	}
	if len(options.Email) == 0 {
		return nil, ErrEmailRequired
	}
	if !govalidator.IsEmail(options.Email) {
		return nil, ErrEmailInvalid
	}

	id, err := newId()
	if err != nil {
		return nil, fmt.Errorf("failed to generate new id: %w", err)
	}

	preferredName := options.PreferredName
	if len(preferredName) == 0 {
		preferredName, _, _ = strings.Cut(options.Email, "@")
	}

	now := time.Now()
	return &User{
		Id:            id,
		Email:         strings.ToLower(options.Email),
		PreferredName: preferredName,
		TeamIds:       options.TeamIds,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
