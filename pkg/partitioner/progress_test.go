package partitioner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapReporterLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	reporter := NewZapReporter(zap.New(core))

	reporter.Report(ProgressEvent{Stage: STAGE_KL_PASS, Iteration: 3, CutEdges: 10, Message: "pass"})
	reporter.Report(ProgressEvent{Stage: STAGE_NEW_BEST, Strategy: "dfs", CutEdges: 4, Message: "best"})

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		assert.Equal(t, int64(3), entries[0].ContextMap()["iteration"])
		assert.Equal(t, "kl-pass", entries[0].ContextMap()["stage"])

		assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
		assert.Equal(t, "dfs", entries[1].ContextMap()["strategy"])
		assert.Equal(t, int64(4), entries[1].ContextMap()["cutEdges"])
	}
}

func TestNopReporterDefault(t *testing.T) {
	assert.Equal(t, NopReporter{}, orNop(nil))
	r := &recordingReporter{}
	assert.Same(t, r, orNop(r))
}
