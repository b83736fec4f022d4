package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/UnAfraid/teamboard/pkg/dataloader"
	"github.com/UnAfraid/teamboard/pkg/loaders"
)

// NewDataLoaderMiddleware gives every request its own loader registry. Batch functions of the
// registry run with the request context.
func NewDataLoaderMiddleware(loaders *loaders.Loaders, options dataloader.Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			registry := loaders.NewRegistry(ctx, options)
			next.ServeHTTP(w, r.WithContext(dataloader.NewContext(ctx, registry)))

			if logrus.IsLevelEnabled(logrus.DebugLevel) {
				logRegistry(r, loaders.Table(), registry)
			}
		})
	}
}

// logRegistry reports the loaders a request constructed and how many entries each memoized.
func logRegistry(r *http.Request, table *dataloader.Table, registry *dataloader.Registry) {
	entries := make(map[dataloader.LoaderName]int)
	for _, name := range table.Names() {
		if registry.Instantiated(name) {
			entries[name] = registry.Instance(name).Len()
		}
	}

	logrus.
		WithField("path", r.URL.Path).
		WithField("loaders", entries).
		WithField("edges", registry.Edges()).
		Debug("request loaders")
}
