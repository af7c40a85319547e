package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tmpl/cli/cmd"
	"github.com/ardnew/tmpl/pkg"
	"github.com/ardnew/tmpl/tmpl"
)

// CLI is the top-level command-line interface for tmpl.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Include []string         `help:"Directories searched for templates before ${pathEnv}" placeholder:"DIR" short:"I" type:"path"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Render cmd.Render `cmd:"" default:"withargs" help:"Render a template against an argument context"`
	Get    cmd.Get    `cmd:""                    help:"Print one argument of the context"`
	Check  cmd.Check  `cmd:""                    help:"Check template syntax"`
	Fmt    cmd.Fmt    `cmd:""                    help:"Format templates"`
	Repl   cmd.Repl   `cmd:""                    help:"Render template snippets interactively"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the tmpl CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// The provider returns ctx as updated below, after parsing.
	parser, err := newParser(&cli, func() context.Context { return ctx }, exit)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSearchPath(ctx, searchPath(cli.Include...))

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}

// newParser builds the kong parser for cli. Configuration files are read
// from the user config directory; command-line flags override them.
func newParser(
	cli *CLI,
	ctx func() context.Context,
	exit func(code int),
	opts ...kong.Option,
) (*kong.Kong, error) {
	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		"version":            pkg.Version(),
		"pathEnv":            pkg.PathEnv,
		"maxDepth":           strconv.Itoa(tmpl.DefaultMaxDepth),
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	return kong.New(cli, append([]kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(ctx),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve, configFilePath),
		vars,
	}, opts...)...)
}
