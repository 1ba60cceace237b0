package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"delta/interpreter-go/pkg/ast"
	"delta/interpreter-go/pkg/driver"
	"delta/interpreter-go/pkg/interpreter"
)

const cliToolVersion = "delta-cli 0.1.0"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const logLevelEnv = "DELTA_LOG_LEVEL"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return newCLI(os.Stdin, os.Stdout, os.Stderr).run(args)
}

// cli holds the streams and per-invocation state shared by every command.
type cli struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	session string
	errTag  *color.Color
}

func newCLI(stdin io.Reader, stdout, stderr io.Writer) *cli {
	return &cli{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		session: uuid.NewString(),
		errTag:  color.New(color.FgRed, color.Bold),
	}
}

func (c *cli) run(args []string) int {
	args = c.stripGlobalFlags(args)
	if len(args) == 0 {
		c.printUsage(c.stderr)
		return exitUsage
	}

	switch args[0] {
	case "--help", "-h", "help":
		c.printUsage(c.stdout)
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(c.stdout, cliToolVersion)
		return exitOK
	case "run":
		return c.runEntry(args[1:])
	case "tokens":
		return c.runTokens(args[1:])
	case "ast":
		return c.runAST(args[1:])
	case "repl":
		return c.runRepl(args[1:])
	default:
		return c.runEntry(args)
	}
}

// stripGlobalFlags removes long options getopt does not understand.
func (c *cli) stripGlobalFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--no-color" {
			c.errTag.DisableColor()
			continue
		}
		out = append(out, arg)
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.errTag.DisableColor()
	}
	return out
}

// commandOptions holds the flags shared by run, tokens, ast and repl.
type commandOptions struct {
	inline    string
	hasInline bool
	verbosity int
	rest      []string
}

func (c *cli) parseOptions(command, spec string, args []string) (*commandOptions, error) {
	opts, optind, err := getopt.Getopts(append([]string{"delta " + command}, args...), spec)
	if err != nil {
		return nil, err
	}
	parsed := &commandOptions{rest: args[optind-1:]}
	for _, opt := range opts {
		switch opt.Option {
		case 'e':
			parsed.inline = opt.Value
			parsed.hasInline = true
		case 'v':
			parsed.verbosity++
		}
	}
	return parsed, nil
}

// newLogger builds the session logger. An explicit -v wins over the
// environment, which wins over the manifest's log_level.
func (c *cli) newLogger(verbosity int, manifestLevel string) (*logrus.Entry, error) {
	logger := logrus.New()
	logger.SetOutput(c.stderr)
	logger.SetLevel(logrus.WarnLevel)

	switch {
	case verbosity >= 2:
		logger.SetLevel(logrus.TraceLevel)
	case verbosity == 1:
		logger.SetLevel(logrus.DebugLevel)
	case os.Getenv(logLevelEnv) != "":
		level, err := logrus.ParseLevel(os.Getenv(logLevelEnv))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", logLevelEnv)
		}
		logger.SetLevel(level)
	case manifestLevel != "":
		level, err := logrus.ParseLevel(manifestLevel)
		if err != nil {
			return nil, err
		}
		logger.SetLevel(level)
	}
	return logger.WithField("session", c.session), nil
}

func (c *cli) runEntry(args []string) int {
	opts, err := c.parseOptions("run", "e:v", args)
	if err != nil {
		return c.usageError("%v", err)
	}
	if opts.hasInline && len(opts.rest) > 0 {
		return c.usageError("delta run takes either -e or a file, not both")
	}
	if len(opts.rest) > 1 {
		return c.usageError("unexpected arguments: %s", strings.Join(opts.rest[1:], " "))
	}

	var manifest *driver.Manifest
	entry := ""
	switch {
	case opts.hasInline:
	case len(opts.rest) == 0:
		manifest, err = loadManifestFrom(".")
		if errors.Is(err, driver.ErrManifestNotFound) {
			return c.usageError("delta run requires a file, a target or -e (%s not found)", driver.ManifestFileName)
		}
		if err != nil {
			return c.fail(err)
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			return c.fail(err)
		}
		if entry, err = manifest.ResolveMain(target); err != nil {
			return c.fail(err)
		}
	default:
		entry, manifest, err = c.resolveEntry(opts.rest[0])
		if err != nil {
			return c.fail(err)
		}
	}

	manifestLevel := ""
	if manifest != nil {
		manifestLevel = manifest.LogLevel
	}
	log, err := c.newLogger(opts.verbosity, manifestLevel)
	if err != nil {
		return c.usageError("%v", err)
	}
	if manifest != nil {
		log = log.WithField("project", manifest.Name)
	}

	loader := driver.NewLoader(log)
	var program *driver.Program
	if opts.hasInline {
		program, err = loader.Compile("-e", opts.inline)
	} else {
		program, err = loader.Load(entry)
	}
	if err != nil {
		return c.fail(err)
	}

	interp := interpreter.New(interpreter.WithOutput(c.stdout), interpreter.WithLogger(log))
	result, err := interp.Run(program.Root)
	if err != nil {
		return c.fail(err)
	}
	log.WithField("result", result.String()).Debug("program finished")
	return exitOK
}

// resolveEntry maps a run argument to a script path. Arguments that look
// like paths are files; anything else is tried as a manifest target first.
func (c *cli) resolveEntry(arg string) (string, *driver.Manifest, error) {
	if !looksLikePathCandidate(arg) {
		manifest, err := loadManifestFrom(".")
		switch {
		case err == nil:
			if target, ok := manifest.FindTarget(arg); ok {
				path, err := manifest.ResolveMain(target)
				return path, manifest, err
			}
		case !errors.Is(err, driver.ErrManifestNotFound):
			fmt.Fprintf(c.stderr, "warning: unable to load manifest (%v); treating %s as a file\n", err, arg)
		}
	}
	manifest, err := loadManifestFrom(arg)
	if err != nil {
		// A broken or absent project file never blocks running a script directly.
		manifest = nil
	}
	return arg, manifest, nil
}

func (c *cli) runTokens(args []string) int {
	program, code := c.loadForInspection("tokens", args)
	if program == nil {
		return code
	}
	for _, tok := range program.Tokens {
		fmt.Fprintln(c.stdout, tok.String())
	}
	return exitOK
}

func (c *cli) runAST(args []string) int {
	program, code := c.loadForInspection("ast", args)
	if program == nil {
		return code
	}
	fmt.Fprint(c.stdout, ast.FormatProgram(program.Root))
	return exitOK
}

// loadForInspection handles the shared argument shape of tokens and ast.
// program is nil when the command should exit with code.
func (c *cli) loadForInspection(command string, args []string) (*driver.Program, int) {
	opts, err := c.parseOptions(command, "e:v", args)
	if err != nil {
		return nil, c.usageError("%v", err)
	}
	sources := len(opts.rest)
	if opts.hasInline {
		sources++
	}
	if sources != 1 {
		return nil, c.usageError("delta %s requires exactly one of -e SOURCE or a file", command)
	}
	log, err := c.newLogger(opts.verbosity, "")
	if err != nil {
		return nil, c.usageError("%v", err)
	}
	loader := driver.NewLoader(log)

	var program *driver.Program
	if opts.hasInline {
		program, err = loader.Compile("-e", opts.inline)
	} else {
		program, err = loader.Load(opts.rest[0])
	}
	if err != nil {
		return nil, c.fail(err)
	}
	return program, exitOK
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	manifestPath, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(manifestPath)
}

func looksLikePathCandidate(arg string) bool {
	if arg == "" {
		return false
	}
	if strings.ContainsAny(arg, `/\`) || strings.Contains(arg, string(os.PathSeparator)) {
		return true
	}
	if filepath.Ext(arg) == driver.SourceExtension {
		return true
	}
	return strings.HasPrefix(arg, ".")
}

// fail reports a language, runtime or I/O error.
func (c *cli) fail(err error) int {
	c.errTag.Fprint(c.stderr, "error:")
	fmt.Fprintf(c.stderr, " %v\n", err)
	return exitFailure
}

func (c *cli) usageError(format string, args ...interface{}) int {
	c.errTag.Fprint(c.stderr, "error:")
	fmt.Fprintf(c.stderr, " "+format+"\n", args...)
	fmt.Fprintln(c.stderr, "run 'delta help' for usage")
	return exitUsage
}

func (c *cli) printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  delta run [-v] [-e SOURCE] [file.delta|target]")
	fmt.Fprintln(w, "  delta <file.delta>")
	fmt.Fprintln(w, "  delta tokens [-e SOURCE] [file.delta]")
	fmt.Fprintln(w, "  delta ast [-e SOURCE] [file.delta]")
	fmt.Fprintln(w, "  delta repl [-v]")
	fmt.Fprintln(w, "  delta version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -v          debug logging; -vv for trace")
	fmt.Fprintln(w, "  --no-color  plain diagnostics")
	fmt.Fprintf(w, "\nThe %s environment variable sets the log level.\n", logLevelEnv)
}
