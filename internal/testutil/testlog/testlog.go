// Package testlog configures quiet structured logging for tests.
package testlog

import (
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/chaosctl/internal/observability"
)

func Start(t *testing.T) {
	t.Helper()
	observability.ConfigureTests()
	log.Debug().Str("test", t.Name()).Msg("start")
}
