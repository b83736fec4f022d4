package api

import (
	"net/http"

	"github.com/UnAfraid/teamboard/pkg/api/internal/model"
	"github.com/UnAfraid/teamboard/pkg/api/internal/resolver"
	"github.com/UnAfraid/teamboard/pkg/auth"
	"github.com/UnAfraid/teamboard/pkg/internal/adapt"
	"github.com/UnAfraid/teamboard/pkg/manage"
	"github.com/UnAfraid/teamboard/pkg/team"
)

type handlers struct {
	resolver                   *resolver.Resolver
	manageService              manage.Service
	teamService                team.Service
	subscriptionAllowedOrigins []string
}

func (h *handlers) meeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerId, err := auth.ViewerIdFromContext(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	meetingId, err := idParam(r, "meetingId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.resolver.Meeting(ctx, viewerId, meetingId)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) team(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerId, err := auth.ViewerIdFromContext(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	teamId, err := idParam(r, "teamId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.resolver.Team(ctx, viewerId, teamId)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) organizationTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerId, err := auth.ViewerIdFromContext(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	orgId, err := idParam(r, "orgId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.resolver.OrganizationTeams(ctx, viewerId, orgId)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) archiveTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerId, err := auth.ViewerIdFromContext(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	teamId, err := idParam(r, "teamId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	archived, err := h.manageService.ArchiveTeam(ctx, viewerId, teamId)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ToArchiveTeamPayload(archived))
}

func (h *handlers) hideConversionModal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewerId, err := auth.ViewerIdFromContext(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	orgId, err := idParam(r, "orgId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	meetings, err := h.manageService.HideConversionModal(ctx, viewerId, orgId)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &model.HideConversionModalPayload{
		Meetings: adapt.Array(meetings, model.ToMeeting),
	})
}
