package partitioner

import (
	"go.uber.org/zap"
)

type ProgressStage int

const (
	STAGE_INITIALIZE ProgressStage = iota
	STAGE_KL_PASS
	STAGE_KL_DONE
	STAGE_RANDOM_TRIALS
	STAGE_PERTURBATION
	STAGE_NEW_BEST
	STAGE_RECONCILE
)

func (s ProgressStage) String() string {
	switch s {
	case STAGE_INITIALIZE:
		return "initialize"
	case STAGE_KL_PASS:
		return "kl-pass"
	case STAGE_KL_DONE:
		return "kl-done"
	case STAGE_RANDOM_TRIALS:
		return "random-trials"
	case STAGE_PERTURBATION:
		return "perturbation"
	case STAGE_NEW_BEST:
		return "new-best"
	case STAGE_RECONCILE:
		return "reconcile"
	}
	return "unknown"
}

// ProgressEvent is advisory only, nothing in the engine reads it back.
type ProgressEvent struct {
	Stage     ProgressStage
	Strategy  string
	Iteration int
	CutEdges  int
	Message   string
}

type ProgressReporter interface {
	Report(event ProgressEvent)
}

type NopReporter struct{}

func (NopReporter) Report(ProgressEvent) {}

type zapReporter struct {
	logger *zap.Logger
}

// NewZapReporter logs every event at debug level, new best results and reconciliations at info.
func NewZapReporter(logger *zap.Logger) ProgressReporter {
	return &zapReporter{logger: logger}
}

func (r *zapReporter) Report(event ProgressEvent) {
	fields := []zap.Field{
		zap.String("stage", event.Stage.String()),
		zap.Int("cutEdges", event.CutEdges),
	}
	if event.Strategy != "" {
		fields = append(fields, zap.String("strategy", event.Strategy))
	}
	if event.Iteration > 0 {
		fields = append(fields, zap.Int("iteration", event.Iteration))
	}

	switch event.Stage {
	case STAGE_NEW_BEST, STAGE_RECONCILE, STAGE_RANDOM_TRIALS:
		r.logger.Info(event.Message, fields...)
	default:
		r.logger.Debug(event.Message, fields...)
	}
}

func orNop(reporter ProgressReporter) ProgressReporter {
	if reporter == nil {
		return NopReporter{}
	}
	return reporter
}
