package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/eventplan/config"
	coremetrics "github.com/kilianp07/eventplan/core/metrics"
	"github.com/kilianp07/eventplan/core/model"
)

func TestPromSinkCountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordCommand(coremetrics.CommandEvent{Command: "append", Duration: time.Millisecond}))
	require.NoError(t, sink.RecordCommand(coremetrics.CommandEvent{Command: "append", Err: &model.OverlapError{}}))
	require.NoError(t, sink.RecordCommand(coremetrics.CommandEvent{Command: "append", Err: errors.New("boom")}))

	assert.Equal(t, 1.0, testutil.ToFloat64(sink.commands.WithLabelValues("append", coremetrics.ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.commands.WithLabelValues("append", coremetrics.ResultOverlap)))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.commands.WithLabelValues("append", coremetrics.ResultError)))

	require.NoError(t, sink.RecordDocument(coremetrics.DocumentStats{Sessions: 4, Staff: 2}))
	assert.Equal(t, 4.0, testutil.ToFloat64(sink.document.WithLabelValues("sessions")))
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.document.WithLabelValues("staff")))
}

func TestPromSinkReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, second.RecordCommand(coremetrics.CommandEvent{Command: "shift"}))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.commands.WithLabelValues("shift", coremetrics.ResultOK)))
}

func TestTextfileSinkFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventplan.prom")
	sink, err := NewTextfileSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.RecordCommand(coremetrics.CommandEvent{Command: "create"}))
	require.NoError(t, sink.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `eventplan_commands_total{command="create",result="ok"} 1`), string(data))
}

func TestNew(t *testing.T) {
	s, err := New(config.MetricsConfig{})
	require.NoError(t, err)
	assert.IsType(t, coremetrics.NopSink{}, s)

	s, err = New(config.MetricsConfig{Textfile: filepath.Join(t.TempDir(), "m.prom")})
	require.NoError(t, err)
	_, ok := s.(coremetrics.Flusher)
	assert.True(t, ok)
}
