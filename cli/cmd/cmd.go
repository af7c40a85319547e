package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tmpl/log"
	"github.com/ardnew/tmpl/tmpl"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type searchPathKey struct{}

// WithSearchPath returns a new context.Context containing the directories
// searched for template files named by relative path.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// stdout returns the writer for command output: the kong context's stdout
// if one is stored in ctx, and os.Stdout otherwise.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr is like [stdout] for diagnostics.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openTemplate opens the template named name.
//
// "-" is standard input. Otherwise name is tried as given, and a relative
// name is then tried under each directory of the search path in order.
func openTemplate(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if name == stdinSource {
		return io.NopCloser(os.Stdin), name, nil
	}

	candidates := []string{name}

	if !filepath.IsAbs(name) {
		for _, dir := range searchPathFrom(ctx) {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}

	for _, path := range candidates {
		file, err := os.Open(path)
		if err == nil {
			log.TraceContext(ctx, "template located",
				slog.String("name", name),
				slog.String("path", path))

			return file, path, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return nil, path, ErrOpenTemplate.
				With(slog.String("file", path)).
				Wrap(err)
		}
	}

	return nil, name, ErrTemplateNotFound.With(
		slog.String("template", name),
		slog.Any("search_path", searchPathFrom(ctx)),
	)
}

// parseTemplate opens and parses the template named name.
func parseTemplate(
	ctx context.Context,
	name string,
	opts ...tmpl.Option,
) (*tmpl.Scope, error) {
	r, path, err := openTemplate(ctx, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	root, err := tmpl.ParseReader(ctx, r, opts...)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "template parsed",
		slog.String("file", path),
		slog.Int("elements", len(root.Elements)))

	return root, nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// loadContexts decodes each context source and merges them in order, later
// sources overriding earlier ones key by key.
//
// Sources naming the same file, through symlinks or different relative
// spellings, are decoded once. Standard input, given as "-", is read last
// regardless of its position. Empty documents contribute nothing.
func loadContexts(ctx context.Context, sources []string) (tmpl.Value, error) {
	var merged tmpl.Value = tmpl.Object{}

	seen := make(map[fileKey]struct{})
	stdin := false

	add := func(name string, r io.Reader) error {
		v, err := tmpl.DecodeContext(r)
		if err != nil {
			return ErrLoadContext.With(slog.String("file", name)).Wrap(err)
		}

		if _, ok := v.(tmpl.Null); ok {
			return nil
		}

		merged = tmpl.Merge(merged, v)

		log.TraceContext(ctx, "context loaded",
			slog.String("file", name),
			slog.String("kind", v.ValueKind().String()))

		return nil
	}

	for _, src := range sources {
		if src == stdinSource {
			stdin = true

			continue
		}

		file, ok, err := openUniqueFile(src, seen)
		if err != nil {
			return nil, ErrLoadContext.With(slog.String("file", src)).Wrap(err)
		}

		if !ok {
			log.DebugContext(ctx, "duplicate context skipped",
				slog.String("file", src))

			continue
		}

		err = add(src, file)
		file.Close()

		if err != nil {
			return nil, err
		}
	}

	if stdin {
		if err := add(stdinSource, os.Stdin); err != nil {
			return nil, err
		}
	}

	return merged, nil
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// It reports false without error if the file is a duplicate.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (io.ReadCloser, bool, error) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false, err
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, false, nil
		}

		seen[key] = struct{}{}
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false, err
	}

	return file, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
