package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/leeforge/devkit/errors"
	"github.com/leeforge/devkit/json"
	"github.com/leeforge/devkit/media/processor"
	"github.com/leeforge/devkit/security"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false
	return fs
}

// parse parses args and checks that exactly want positional arguments remain.
func parse(fs *flag.FlagSet, args []string, want int, names string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return errors.NewInvalidOptions(err.Error()).WithInnerError(err)
	}
	if fs.NArg() != want {
		return errors.NewInvalidOptions(fmt.Sprintf("%s expects %s", fs.Name(), names))
	}
	return nil
}

func (a *app) info(args []string, stderr io.Writer) error {
	fs := newFlagSet("info", stderr)
	if err := parse(fs, args, 1, "<path>"); err != nil {
		return err
	}

	info, err := a.pipeline.Inspect(fs.Arg(0))
	if err != nil {
		return err
	}
	return a.print(info)
}

func (a *app) resize(args []string, stderr io.Writer) error {
	fs := newFlagSet("resize", stderr)
	width := fs.Uint32("width", 0, "target width in pixels")
	height := fs.Uint32("height", 0, "target height in pixels")
	percentage := fs.Float32("percentage", 0, "scale both sides by this percentage; wins over width and height")
	keepAspect := fs.Bool("keep-aspect", false, "derive the missing side from the original aspect ratio")
	optionsJSON := fs.String("options", "", `resize options as JSON, e.g. {"width":200,"maintain_aspect":true}`)
	if err := parse(fs, args, 2, "<in> <out>"); err != nil {
		return err
	}

	var opts processor.ResizeOptions
	if *optionsJSON != "" {
		dec := json.NewDecoder(strings.NewReader(*optionsJSON))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil {
			return errors.NewInvalidOptions(fmt.Sprintf("invalid --options: %v", err)).WithInnerError(err)
		}
	}
	if fs.Changed("width") {
		opts.Width = width
	}
	if fs.Changed("height") {
		opts.Height = height
	}
	if fs.Changed("percentage") {
		opts.Percentage = percentage
	}
	if fs.Changed("keep-aspect") {
		opts.MaintainAspect = *keepAspect
	}

	info, err := a.pipeline.Resize(fs.Arg(0), fs.Arg(1), opts)
	if err != nil {
		return err
	}
	return a.print(info)
}

func (a *app) convert(args []string, stderr io.Writer) error {
	fs := newFlagSet("convert", stderr)
	if err := parse(fs, args, 2, "<in> <out>"); err != nil {
		return err
	}

	info, err := a.pipeline.Convert(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	return a.print(info)
}

type hashOutput struct {
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
}

type hashAllOutput struct {
	Hashes []security.HashResult `json:"hashes"`
}

func (a *app) hash(args []string, stderr io.Writer) error {
	fs := newFlagSet("hash", stderr)
	algorithm := fs.StringP("algorithm", "a", "sha256", "md5, sha256, sha512 or all")
	if err := parse(fs, args, 1, "<text>"); err != nil {
		return err
	}
	text := fs.Arg(0)

	if strings.EqualFold(*algorithm, "all") {
		return a.print(&hashAllOutput{Hashes: security.HashAll(text)})
	}

	digest, err := security.Hash(text, *algorithm)
	if err != nil {
		return err
	}
	return a.print(&hashOutput{Algorithm: strings.ToLower(*algorithm), Digest: digest})
}

type uuidOutput struct {
	Version security.UUIDVersion `json:"version"`
	UUIDs   []string             `json:"uuids"`
}

func (a *app) uuid(args []string, stderr io.Writer) error {
	fs := newFlagSet("uuid", stderr)
	version := fs.StringP("version", "v", "v4", "v4 (random) or v7 (time-ordered)")
	count := fs.IntP("count", "n", 1, fmt.Sprintf("number of UUIDs, 1 to %d", security.MaxBulkUUIDs))
	if err := parse(fs, args, 0, "no arguments"); err != nil {
		return err
	}

	v, err := security.ParseUUIDVersion(*version)
	if err != nil {
		return err
	}
	ids, err := a.uuids.Bulk(v, *count)
	if err != nil {
		return err
	}
	return a.print(&uuidOutput{Version: v, UUIDs: ids})
}

type passwordOutput struct {
	Password string            `json:"password"`
	Strength security.Strength `json:"strength"`
}

func (a *app) password(args []string, stderr io.Writer) error {
	fs := newFlagSet("password", stderr)
	length := fs.IntP("length", "l", a.cfg.Password.Length, "password length, at least 4")
	noUpper := fs.Bool("no-upper", false, "exclude A-Z")
	noLower := fs.Bool("no-lower", false, "exclude a-z")
	noNumbers := fs.Bool("no-numbers", false, "exclude 0-9")
	noSymbols := fs.Bool("no-symbols", false, "exclude symbols")
	if err := parse(fs, args, 0, "no arguments"); err != nil {
		return err
	}

	pwd, err := a.passwords.Generate(security.PasswordOptions{
		Length:           *length,
		IncludeUppercase: !*noUpper,
		IncludeLowercase: !*noLower,
		IncludeNumbers:   !*noNumbers,
		IncludeSymbols:   !*noSymbols,
	})
	if err != nil {
		return err
	}

	strength := security.EvaluateStrength(pwd)
	a.loggers.GetLogger("password").Debug("generated password",
		zap.String("masked", security.MaskString(pwd)),
		zap.String("strength", strength.Label),
	)
	return a.print(&passwordOutput{Password: pwd, Strength: strength})
}
