package tmpl

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed trees keyed by source and option hash.
// Trees are immutable and shared by every template parsed from that source.
var globalCache sync.Map

// entry tracks the single parse of one cached source.
type entry struct {
	once sync.Once
	root *Scope
	err  error
}

// ParseReader parses template source read from r.
// The parsed tree is cached after the first parse of identical source.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Scope, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	o := makeOptions(opts...)

	o.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true))

	return parseCached(ctx, string(data), o)
}

// parseCached parses source, reusing a previous result for the same source
// and options.
func parseCached(ctx context.Context, source string, o options) (*Scope, error) {
	sourceHash := xxh3.HashString(source)
	optsHash := xxh3.HashString(strconv.Itoa(o.maxDepth))
	key := strconv.FormatUint(sourceHash^optsHash, 36)

	value, cacheHit := globalCache.LoadOrStore(key, new(entry))

	e, ok := value.(*entry)
	if !ok {
		return nil, ErrInvalidElement.
			With(slog.String("issue", "invalid cache entry type"))
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", cacheHit))

	e.once.Do(func() {
		e.root, e.err = parse(ctx, source, o)
	})

	return e.root, e.err
}

// ClearCache removes all cached trees.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
