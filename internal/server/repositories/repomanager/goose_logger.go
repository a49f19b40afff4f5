package repomanager

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

// gooseLogger routes goose output into the server's structured logger.
type gooseLogger struct {
	ctx    context.Context
	logger logging.Logger
}

func newGooseLogger(ctx context.Context, l logging.Logger) *gooseLogger {
	if l == nil {
		l = logging.Nop{}
	}
	return &gooseLogger{ctx: ctx, logger: l.With("module", "migrations")}
}

func (g *gooseLogger) Printf(format string, v ...interface{}) {
	g.logger.Info(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf mirrors log.Fatalf: goose expects the process to stop.
func (g *gooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
