// Package notifier hides the Sentry client behind a small interface so
// the rest of the server doesn't depend on raven directly and tests can
// run without a DSN.
package notifier

import (
	"github.com/getsentry/raven-go"
)

type Notifier interface {
	CaptureError(err error, tags map[string]string, interfaces ...raven.Interface) string
}

// New returns a raven-backed notifier, or a no-op one when dsn is empty.
func New(dsn, env, release string) (Notifier, error) {
	if dsn == "" {
		return Noop{}, nil
	}

	client, err := raven.New(dsn)
	if err != nil {
		return nil, err
	}
	client.SetEnvironment(env)
	client.SetRelease(release)
	return client, nil
}

type Noop struct{}

func (Noop) CaptureError(error, map[string]string, ...raven.Interface) string { return "" }
