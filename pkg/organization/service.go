package organization

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	FindOrganizations(ctx context.Context, options *FindOptions) ([]*Organization, error)
	CreateOrganization(ctx context.Context, options *CreateOptions) (*Organization, error)
	UpdateOrganization(ctx context.Context, orgId string, options *UpdateOptions, fieldMask *UpdateFieldMask) (*Organization, error)
}

type service struct {
	organizationRepository Repository
}

func NewService(organizationRepository Repository) Service {
	return &service{
		organizationRepository: organizationRepository,
	}
}

func (s *service) FindOrganizations(ctx context.Context, options *FindOptions) ([]*Organization, error) {
	return s.organizationRepository.FindAll(ctx, options)
}

func (s *service) CreateOrganization(ctx context.Context, options *CreateOptions) (*Organization, error) {
	if options == nil {
		return nil, ErrCreateOptionsRequired
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
	return s.organizationRepository.Create(ctx, &Organization{
		Id:                  id.String(),
		Name:                name,
		AdminUserIds:        options.AdminUserIds,
		ShowConversionModal: options.ShowConversionModal,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
}

func (s *service) UpdateOrganization(ctx context.Context, orgId string, options *UpdateOptions, fieldMask *UpdateFieldMask) (*Organization, error) {
	if options == nil {
		return nil, ErrUpdateOptionsRequired
	}
	if fieldMask == nil {
		return nil, ErrUpdateFieldMaskRequired
	}
	if fieldMask.Name && len(strings.TrimSpace(options.Name)) == 0 {
		return nil, ErrNameRequired
	}

	return s.organizationRepository.Update(ctx, &Organization{
		Id:                  orgId,
		Name:                strings.TrimSpace(options.Name),
		ShowConversionModal: options.ShowConversionModal,
	}, fieldMask)
}
