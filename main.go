package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/json2struct/internal/analyzer"
	"github.com/mcncl/json2struct/internal/config"
	"github.com/mcncl/json2struct/internal/errors"
	"github.com/mcncl/json2struct/internal/formatter"
	"github.com/mcncl/json2struct/internal/generator"
	"github.com/mcncl/json2struct/internal/logger"
	"github.com/mcncl/json2struct/internal/models"
	"github.com/mcncl/json2struct/internal/parser"
	"github.com/spf13/afero"
)

// stdio is the path that stands for stdin on input and stdout on output.
const stdio = "-"

// CLI defines the command-line interface
var CLI struct {
	Input          string `arg:"" optional:"" help:"Path to the input JSON file, or '-' to read stdin."`
	Output         string `help:"Output path. Defaults to the input path with the configuration's file extension; '-' writes to stdout." short:"o"`
	RootName       string `help:"Name for the root struct." short:"r" default:"Root"`
	NullableFields bool   `help:"Wrap every field type in the configuration's optional template." short:"n"`
	Config         string `help:"Built-in configuration name, name of a file in --config-dir, or path to a TOML/YAML configuration." short:"c" default:"rust"`
	ConfigDir      string `help:"Directory searched for <name>.toml configurations." default:"configs"`
	Format         bool   `help:"Run the output through the target's formatter when one exists (Go only)." default:"true" negatable:""`
	ListConfigs    bool   `help:"List the built-in configurations and exit."`
	Debug          bool   `help:"Enable debug logging." short:"d"`
	Version        bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Fs     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("json2struct"),
		kong.Description("Infer struct definitions from an example JSON document and render them for any language"),
		kong.UsageOnError(),
	)

	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if CLI.Version {
		fmt.Printf("json2struct version %s\n", Version)
		return
	}

	if CLI.ListConfigs {
		listConfigs(os.Stdout)
		return
	}

	err = run(&Context{
		Debug:  CLI.Debug,
		Fs:     afero.NewOsFs(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: json2struct --help\n")
		os.Exit(1)
	}
}

func listConfigs(w io.Writer) {
	for _, name := range config.Builtins() {
		fmt.Fprintln(w, name)
	}
}

// run executes the main program logic. Nothing is written unless every stage succeeds.
func run(ctx *Context) error {
	logCfg := logger.DefaultConfig()
	logCfg.Output = ctx.Stderr
	logCfg.Level = logger.InfoLevel
	if ctx.Debug {
		logCfg.Level = logger.DebugLevel
	}
	logger.Init(logCfg)

	// 1. Parse JSON input
	ir, err := parseInput(ctx)
	if err != nil {
		return err
	}

	// 2. Resolve the template configuration
	cfg, source, err := config.NewLoader(ctx.Fs, CLI.ConfigDir).Load(CLI.Config)
	if err != nil {
		return err
	}
	logger.Debug("using configuration", "identifier", CLI.Config, "source", source)

	// 3. Infer the struct map
	analysisResult, err := analyzer.NewAnalyzerWithNamer(CLI.NullableFields, cfg.Namer()).Analyze(ir, CLI.RootName)
	if err != nil {
		return err
	}
	logger.Debug("analyzed input", "structs", len(analysisResult.Structs), "root", analysisResult.RootName)

	// 4. Render
	code, err := generator.NewGenerator(cfg).Generate(analysisResult)
	if err != nil {
		return err
	}

	// 5. Format the code if requested
	if CLI.Format {
		code, err = formatter.NewFormatter().Format(code, cfg.Extension())
		if err != nil {
			return errors.NewFormatError("failed to format generated code", err)
		}
	}

	// 6. Output the result
	return writeOutput(ctx, code, outputPath(CLI.Input, CLI.Output, cfg.Extension()))
}

// parseInput reads JSON from the input file or stdin
func parseInput(ctx *Context) (models.IntermediateRepresentation, error) {
	switch CLI.Input {
	case "":
		return models.IntermediateRepresentation{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	case stdio:
		data, err := io.ReadAll(ctx.Stdin)
		if err != nil {
			return models.IntermediateRepresentation{}, errors.NewInputError("failed to read from stdin", err)
		}
		return parser.ParseString(string(data))
	default:
		return parser.ParseFile(ctx.Fs, CLI.Input)
	}
}

// outputPath picks where generated code goes. An explicit output wins; stdin
// input goes to stdout; otherwise the input's extension is swapped for ext.
func outputPath(input, output, ext string) string {
	if output != "" {
		return output
	}
	if input == stdio {
		return stdio
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
}

// writeOutput writes code to file or stdout
func writeOutput(ctx *Context, code, path string) error {
	if path == stdio {
		if _, err := io.WriteString(ctx.Stdout, code); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
		return nil
	}

	if filepath.Clean(path) == filepath.Clean(CLI.Input) {
		return errors.NewOutputError(fmt.Sprintf("output path '%s' is the input file", path), errors.ErrInvalidFilePath)
	}

	if err := afero.WriteFile(ctx.Fs, path, []byte(code), 0o644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
	}
	logger.Info("generated code written", "path", path)
	return nil
}
