package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/UnAfraid/teamboard/pkg/api/internal/model"
	"github.com/UnAfraid/teamboard/pkg/auth"
)

const (
	websocketsKeepAlivePingInterval = 10 * time.Second
	websocketsWriteTimeout          = 5 * time.Second
)

// teamSubscription streams the changed events of a team over a websocket.
func (h *handlers) teamSubscription(w http.ResponseWriter, r *http.Request) {
	viewerId, err := auth.ViewerIdFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	teamId, err := idParam(r, "teamId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.resolver.Team(r.Context(), viewerId, teamId); err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events, err := h.teamService.Subscribe(ctx, teamId)
	if err != nil {
		writeError(w, r, err)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return checkOrigin(r, h.subscriptionAllowedOrigins)
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Debug("failed to upgrade team subscription")
		return
	}
	defer conn.Close()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(websocketsKeepAlivePingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(websocketsWriteTimeout))
			if err := conn.WriteJSON(model.ToTeamChangedEvent(event)); err != nil {
				logrus.WithError(err).WithField("teamId", teamId).Debug("failed to write team changed event")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(websocketsWriteTimeout)); err != nil {
				return
			}
		}
	}
}
