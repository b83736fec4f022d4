package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/UnAfraid/teamboard/pkg/api/internal/handler"
	"github.com/UnAfraid/teamboard/pkg/api/internal/resolver"
	"github.com/UnAfraid/teamboard/pkg/auth"
	"github.com/UnAfraid/teamboard/pkg/config"
	"github.com/UnAfraid/teamboard/pkg/dataloader"
	"github.com/UnAfraid/teamboard/pkg/loaders"
	"github.com/UnAfraid/teamboard/pkg/manage"
	"github.com/UnAfraid/teamboard/pkg/team"
)

func NewRouter(
	conf *config.Config,
	authService auth.Service,
	loaders *loaders.Loaders,
	observer dataloader.Observer,
	teamService team.Service,
	manageService manage.Service,
) http.Handler {
	h := &handlers{
		resolver:                   resolver.NewResolver(loaders),
		manageService:              manageService,
		teamService:                teamService,
		subscriptionAllowedOrigins: conf.SubscriptionAllowedOrigins,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   conf.CorsAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: conf.CorsAllowCredentials,
	}))

	router.HandleFunc("/health", func(writer http.ResponseWriter, request *http.Request) {})

	router.Group(func(r chi.Router) {
		r.Use(handler.NewAuthenticationMiddleware(authService.JWTAuth()))
		r.Use(handler.NewDataLoaderMiddleware(loaders, dataloader.Options{
			Wait:     conf.DataLoader.Wait,
			MaxBatch: conf.DataLoader.MaxBatch,
			Observer: observer,
		}))

		r.Get("/api/meetings/{meetingId}", h.meeting)
		r.Get("/api/teams/{teamId}", h.team)
		r.Post("/api/teams/{teamId}/archive", h.archiveTeam)
		r.Get("/api/organizations/{orgId}/teams", h.organizationTeams)
		r.Post("/api/organizations/{orgId}/hide-conversion-modal", h.hideConversionModal)
		r.Get("/api/subscriptions/teams/{teamId}", h.teamSubscription)
	})

	return router
}
