package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/tmpl/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Info("template rendered", slog.String("template", "page.tmpl"), slog.Int("bytes", 412))
	logger.Debug("not shown at the default level")
	// Output:
	// level=INFO msg="template rendered" template=page.tmpl bytes=412
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"),
		log.WithPretty(false)).
		With(slog.String("source", "site.yaml"))

	logger.Trace("requires failed", slog.String("path", "user.email"))
	// Output:
	// level=TRACE msg="requires failed" source=site.yaml path=user.email
}

func ExampleParseLevel() {
	for _, name := range []string{"trace", "WARN", "info+2", "bogus"} {
		os.Stdout.WriteString(log.ParseLevel(name).String() + "\n")
	}
	// Output:
	// trace
	// warn
	// info+2
	// info
}
