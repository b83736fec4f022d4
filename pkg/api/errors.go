package api

import (
	"errors"
	"net/http"

	"github.com/UnAfraid/teamboard/pkg/api/internal/resolver"
	"github.com/UnAfraid/teamboard/pkg/auth"
	"github.com/UnAfraid/teamboard/pkg/dataloader"
	"github.com/UnAfraid/teamboard/pkg/manage"
	"github.com/UnAfraid/teamboard/pkg/organization"
	"github.com/UnAfraid/teamboard/pkg/team"
)

var ErrInvalidId = errors.New("invalid id")

type errorResponse struct {
	Error string `json:"error"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrSubjectMissing),
		errors.Is(err, manage.ErrViewerRequired):
		return http.StatusUnauthorized
	case errors.Is(err, manage.ErrForbidden),
		errors.Is(err, resolver.ErrNotTeamMember):
		return http.StatusForbidden
	case errors.Is(err, dataloader.ErrNotFound),
		errors.Is(err, team.ErrTeamNotFound),
		errors.Is(err, organization.ErrOrganizationNotFound):
		return http.StatusNotFound
	case errors.Is(err, team.ErrTeamAlreadyArchived):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidId):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
