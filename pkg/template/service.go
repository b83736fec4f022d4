package template

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	FindTemplates(ctx context.Context, options *FindOptions) ([]*MeetingTemplate, error)
	CreateTemplate(ctx context.Context, options *CreateOptions) (*MeetingTemplate, error)
	DeactivateTemplates(ctx context.Context, templateIds []string) ([]*MeetingTemplate, error)
}

type service struct {
	templateRepository Repository
}

func NewService(templateRepository Repository) Service {
	return &service{
		templateRepository: templateRepository,
	}
}

func (s *service) FindTemplates(ctx context.Context, options *FindOptions) ([]*MeetingTemplate, error) {
	return s.templateRepository.FindAll(ctx, options)
}

func (s *service) CreateTemplate(ctx context.Context, options *CreateOptions) (*MeetingTemplate, error) {
	if options == nil {
		return nil, ErrCreateOptionsRequired
	}
	if len(options.TeamId) == 0 {
		return nil, ErrTeamIdRequired
	}

	name := strings.TrimSpace(options.Name)
	if len(name) == 0 {
		return nil, ErrNameRequired
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate new id: %w", err)
	}

	now := time.Now()
	return s.templateRepository.Create(ctx, &MeetingTemplate{
		Id:          id.String(),
		TeamId:      options.TeamId,
		OrgId:       options.OrgId,
		Name:        name,
		MeetingType: options.MeetingType,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *service) DeactivateTemplates(ctx context.Context, templateIds []string) ([]*MeetingTemplate, error) {
	if len(templateIds) == 0 {
		return nil, nil
	}
	return s.templateRepository.Deactivate(ctx, templateIds)
}
