package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		logrus.WithError(err).Warn("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	entry := logrus.
		WithError(err).
		WithField("requestId", middleware.GetReqID(r.Context())).
		WithField("path", r.URL.Path).
		WithField("status", status)
	if status == http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// idParam returns the uuid path parameter name.
func idParam(r *http.Request, name string) (string, error) {
	id := chi.URLParam(r, name)
	if !govalidator.IsUUID(id) {
		return "", fmt.Errorf("%w: %s %q", ErrInvalidId, name, id)
	}
	return id, nil
}

func checkOrigin(r *http.Request, allowedSubscriptionOrigins []string) bool {
	origin := r.Header["Origin"]
	if len(origin) == 0 {
		return true
	}

	u, err := url.Parse(origin[0])
	if err != nil {
		return false
	}

	for _, allowedHost := range allowedSubscriptionOrigins {
		allowedHost = strings.TrimSpace(allowedHost)
		if allowedHost == "*" {
			return true
		}
		if equalASCIIFold(u.Host, allowedHost) {
			return true
		}
	}

	return equalASCIIFold(u.Host, r.Host)
}

func equalASCIIFold(s, t string) bool {
	for s != "" && t != "" {
		sr, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		tr, size := utf8.DecodeRuneInString(t)
		t = t[size:]
		if sr == tr {
			continue
		}
		if 'A' <= sr && sr <= 'Z' {
			sr = sr + 'a' - 'A'
		}
		if 'A' <= tr && tr <= 'Z' {
			tr = tr + 'a' - 'A'
		}
		if sr != tr {
			return false
		}
	}
	return s == t
}
