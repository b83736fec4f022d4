package resolver

import (
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// fieldErrors collects the failures of fields resolved concurrently. A failed field is reported
// under its name and leaves the other fields of the view intact.
type fieldErrors struct {
	mu     sync.Mutex
	errors map[string]string
}

func (f *fieldErrors) record(field string, err error) {
	if err == nil {
		return
	}

	logrus.
		WithError(err).
		WithField("field", field).
		Warn("failed to resolve field")

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errors == nil {
		f.errors = make(map[string]string)
	}
	f.errors[field] = err.Error()
}

func (f *fieldErrors) result() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors
}

// resolveField runs fn on g and records its failure under field instead of failing g.
func resolveField(g *errgroup.Group, errs *fieldErrors, field string, fn func() error) {
	g.Go(func() error {
		errs.record(field, fn())
		return nil
	})
}
