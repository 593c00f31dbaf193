package tracing

// Span attribute keys.
const (
	AttrBufferID   = "buffer.id"
	AttrDialect    = "scan.dialect"
	AttrRangeStart = "scan.range.start"
	AttrRangeEnd   = "scan.range.end"
	AttrReplayFrom = "scan.replay.from"
	AttrReplayTo   = "scan.replay.to"
	AttrLines      = "scan.lines"
	AttrCacheHits  = "cache.hits"
	AttrCacheMiss  = "cache.misses"
	AttrFilePath   = "file.path"
)

// Span names.
const (
	SpanSessionRange  = "session.range"
	SpanSessionReplay = "session.replay"
	SpanHighlightDoc  = "highlight.document"
	SpanModeSelect    = "filemode.select"
)

// Event names.
const (
	EventInvalidated    = "checkpoints.invalidated"
	EventDialectChanged = "dialect.changed"
)
