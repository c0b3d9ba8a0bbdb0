package processor

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// runContext is the per-request context of one terminal operation.
// Everything a run needs travels here explicitly, so concurrent
// documents never share mutable state.
type runContext struct {
	id     uuid.UUID
	logger *slog.Logger
	start  time.Time
}

// newRun creates the context for one terminal operation.
func (p *Processor) newRun(op string) runContext {
	logger := p.options.logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return runContext{
		id:     id,
		logger: logger.With("run_id", id.String(), "op", op),
		start:  time.Now(),
	}
}
