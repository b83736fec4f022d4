package model

import (
	"github.com/UnAfraid/teamboard/pkg/organization"
	"github.com/UnAfraid/teamboard/pkg/user"
)

func ToUser(user *user.User) *User {
	if user == nil {
		return nil
	}
	return &User{
		ID:            user.Id,
		Email:         user.Email,
		PreferredName: user.PreferredName,
		TeamIds:       user.TeamIds,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func ToOrganization(organization *organization.Organization) *Organization {
	if organization == nil {
		return nil
	}
	return &Organization{
		ID:                  organization.Id,
		Name:                organization.Name,
		ShowConversionModal: organization.ShowConversionModal,
		CreatedAt:           organization.CreatedAt,
		UpdatedAt:           organization.UpdatedAt,
	}
}
