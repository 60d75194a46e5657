package main

import (
	"fmt"
	"io"
	"os"

	"github.com/leeforge/devkit/config"
	"github.com/leeforge/devkit/errors"
	"github.com/leeforge/devkit/json"
	"github.com/leeforge/devkit/logging"
	"github.com/leeforge/devkit/media/processor"
	"github.com/leeforge/devkit/media/storage"
	"github.com/leeforge/devkit/security"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

const usage = `Usage: devkit [--config file] [--log-level level] <command> [flags] [args]

Commands:
  info <path>                     report image dimensions and extension
  resize [flags] <in> <out>       resize an image; output format follows <out>'s extension
  convert <in> <out>              re-encode an image as <out>'s extension
  hash [--algorithm a] <text>     md5, sha256, sha512 or all
  uuid [--version v] [--count n]  v4 or v7 UUIDs
  password [flags]                random password with a strength rating
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type app struct {
	cfg       *config.DevkitConfig
	loggers   *logging.Factory
	pipeline  *processor.Pipeline
	uuids     *security.UUIDGenerator
	passwords *security.PasswordGenerator
	stdout    io.Writer
}

// run executes one command and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("devkit", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.SetInterspersed(false)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	configFile := global.String("config", "", "config file (default: devkit.yaml in $CONFIG_PATH or the working directory)")
	logLevel := global.String("log-level", "", "override log.level")

	if err := global.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if global.NArg() == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	opts := config.DefaultConfigOptions()
	opts.ConfigFile = *configFile
	cfg, err := config.Load(opts)
	if err != nil {
		return fail(logging.Global(), stderr, err)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logging.Init(cfg.Log)
	defer logging.Sync()
	defer logging.CloseAllWriters()

	a := newApp(cfg, stdout)
	if err := a.dispatch(global.Arg(0), global.Args()[1:], stderr); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return fail(logging.Global(), stderr, err)
	}
	return 0
}

func newApp(cfg *config.DevkitConfig, stdout io.Writer) *app {
	loggers := logging.NewFactory(logging.Global())

	codec := processor.NewCodec(
		storage.NewLocalProvider(cfg.Image.BaseDir),
		processor.WithEncodeOptions(processor.EncodeOptions{
			JPEGQuality: cfg.Image.JPEGQuality,
			WebPLossy:   cfg.Image.WebPLossy,
			WebPQuality: cfg.Image.WebPQuality,
		}),
		processor.WithCodecLogger(loggers.GetLogger("codec")),
	)

	return &app{
		cfg:       cfg,
		loggers:   loggers,
		pipeline:  processor.NewPipeline(codec, processor.WithLogger(loggers.GetLogger("pipeline"))),
		uuids:     security.NewUUIDGenerator(nil),
		passwords: security.NewPasswordGenerator(nil),
		stdout:    stdout,
	}
}

func (a *app) dispatch(command string, args []string, stderr io.Writer) error {
	a.loggers.Root().Debug("running command", zap.String("command", command), zap.Strings("args", args))

	switch command {
	case "info":
		return a.info(args, stderr)
	case "resize":
		return a.resize(args, stderr)
	case "convert":
		return a.convert(args, stderr)
	case "hash":
		return a.hash(args, stderr)
	case "uuid":
		return a.uuid(args, stderr)
	case "password":
		return a.password(args, stderr)
	case "help":
		fmt.Fprint(stderr, usage)
		return nil
	default:
		return errors.NewInvalidOptions(fmt.Sprintf("unknown command %q", command))
	}
}

// print writes v to stdout as indented JSON. v must be a struct pointer.
func (a *app) print(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return encode(enc, v)
}

func encode(enc json.EncoderInterface, v any) error {
	if err := enc.Encode(v); err != nil {
		return errors.WrapWithType(err, errors.ErrorTypeInternal, "failed to write output").
			WithCode(errors.CodeInternalError)
	}
	return nil
}

// fail reports err on stderr and returns its exit status. The full error,
// with details and cause, goes to the debug log.
func fail(logger logging.Logger, stderr io.Writer, err error) int {
	appErr := errors.FromError(err)
	logger.Debug("command failed",
		zap.String("error", errors.NewErrorFormatter(true).Format(err)),
		zap.String("code", appErr.Code),
	)
	fmt.Fprintf(stderr, "error: %s\n", err.Error())
	return appErr.ExitCode()
}
