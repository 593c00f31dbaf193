package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []SpanRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		out = append(out, rec)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestFileExporter_WritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spans.jsonl")
	exp, err := NewFileExporter(path)
	require.NoError(t, err)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	tracer := tp.Tracer("test")

	ctx, parent := tracer.Start(context.Background(), SpanSessionRange)
	parent.SetAttributes(
		attribute.String(AttrDialect, "asm6809"),
		attribute.Int(AttrRangeStart, 10),
	)
	_, child := tracer.Start(ctx, SpanSessionReplay)
	child.AddEvent(EventInvalidated, trace.WithAttributes(attribute.Int(AttrReplayFrom, 3)))
	child.SetStatus(codes.Error, "replay failed")
	child.RecordError(errors.New("boom"))
	child.End()
	parent.SetStatus(codes.Ok, "")
	parent.End()

	require.NoError(t, tp.Shutdown(context.Background()))

	records := readRecords(t, path)
	require.Len(t, records, 2)

	replay, rng := records[0], records[1]
	require.Equal(t, SpanSessionReplay, replay.Name)
	require.Equal(t, rng.SpanID, replay.ParentSpanID)
	require.Equal(t, rng.TraceID, replay.TraceID)
	require.Equal(t, "ERROR", replay.Status)
	require.Equal(t, "replay failed", replay.StatusMsg)
	require.NotEmpty(t, replay.Events)
	require.Equal(t, EventInvalidated, replay.Events[0].Name)

	require.Equal(t, "OK", rng.Status)
	require.Empty(t, rng.ParentSpanID)
	require.Equal(t, "asm6809", rng.Attributes[AttrDialect])
	require.EqualValues(t, 10, rng.Attributes[AttrRangeStart])
}

func TestFileExporter_ShutdownIdempotent(t *testing.T) {
	exp, err := NewFileExporter(filepath.Join(t.TempDir(), "a", "b", "spans.jsonl"))
	require.NoError(t, err)

	require.NoError(t, exp.Shutdown(context.Background()))
	require.NoError(t, exp.Shutdown(context.Background()))
	require.Error(t, exp.ExportSpans(context.Background(), nil))
}
