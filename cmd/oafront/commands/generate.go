package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/erraggy/oafront"
	"github.com/erraggy/oafront/generator"
	"github.com/erraggy/oafront/internal/cliutil"
	"github.com/erraggy/oafront/parser"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output     string
	Name       string
	Language   string
	URL        string
	Config     string
	Check      bool
	Strict     bool
	NoWarnings bool
	Verbose    bool
	JSON       bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
// String flags default to "" so that values from the config file can fill them.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory for generated files (required)")
	fs.StringVar(&flags.Output, "output", "", "output directory for generated files (required)")
	fs.StringVar(&flags.Name, "n", "", "module name used for file names and the client interface (default \"api\")")
	fs.StringVar(&flags.Name, "name", "", "module name used for file names and the client interface (default \"api\")")
	fs.StringVar(&flags.Language, "l", "", "implementation language: ts or js (default \"ts\")")
	fs.StringVar(&flags.Language, "language", "", "implementation language: ts or js (default \"ts\")")
	fs.StringVar(&flags.URL, "url", "", "source URL recorded in the generated file headers")
	fs.StringVar(&flags.Config, "config", "", "path to a TOML config file (default ./"+DefaultConfigFile+" if present)")
	fs.BoolVar(&flags.Check, "check", false, "compare with the files in the output directory instead of writing; exit non-zero on drift")
	fs.BoolVar(&flags.Strict, "strict", false, "fail on any generation warnings")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress info messages")
	fs.BoolVar(&flags.Verbose, "v", false, "log generation details to stderr")
	fs.BoolVar(&flags.JSON, "json", false, "print a JSON manifest instead of the text summary")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oafront generate [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Generate a TypeScript or JavaScript fetch client from an OpenAPI 3.x document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oafront generate -o ./src/api openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oafront generate -o ./src/api -n petstore -l js petstore.yaml\n")
		cliutil.Writef(fs.Output(), "  oafront generate -o ./src/api https://example.com/api/openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oafront generate --check -o ./src/api openapi.yaml  # CI drift check\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | oafront generate -o ./src/api -\n")
		cliutil.Writef(fs.Output(), "\nOutput:\n")
		cliutil.Writef(fs.Output(), "  <name>-types.d.ts   request/response interfaces and the client interface\n")
		cliutil.Writef(fs.Output(), "  <name>.ts|.js       one async fetch function per operation\n")
		cliutil.Writef(fs.Output(), "\nConfig file (%s):\n", DefaultConfigFile)
		cliutil.Writef(fs.Output(), "  name, language, url, output and strict supply defaults for the flags above.\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	return runGenerate(args, os.Stdin, os.Stdout, os.Stderr)
}

func runGenerate(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupGenerateFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path, URL, or '-' for stdin")
	}
	specPath := fs.Arg(0)

	fileCfg, err := LoadFileConfig(flags.Config)
	if err != nil {
		return err
	}

	output := firstNonEmpty(flags.Output, fileCfg.Output)
	if output == "" {
		fs.Usage()
		return fmt.Errorf("output directory is required (use -o or --output)")
	}

	opts, err := buildGenerateOptions(flags, fileCfg, specPath, stdin, stderr)
	if err != nil {
		return err
	}

	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("generating client: %w", err)
	}

	if flags.Check {
		return checkDrift(result, output, stdout, stderr)
	}

	if err := result.WriteFiles(output); err != nil {
		return fmt.Errorf("writing files: %w", err)
	}

	if flags.JSON {
		data, err := result.MarshalManifest()
		if err != nil {
			return fmt.Errorf("marshaling manifest: %w", err)
		}
		cliutil.Writef(stdout, "%s\n", data)
	} else {
		printSummary(stdout, result, specPath, output)
	}

	if !result.Success {
		return fmt.Errorf("generation failed with %d critical issue(s)", result.CriticalCount)
	}
	return nil
}

// buildGenerateOptions merges flags over the config file over the built-in
// defaults and selects the input source.
func buildGenerateOptions(flags *GenerateFlags, fileCfg FileConfig, specPath string, stdin io.Reader, stderr io.Writer) ([]generator.Option, error) {
	opts := []generator.Option{
		generator.WithStrictMode(flags.Strict || fileCfg.Strict),
		generator.WithIncludeInfo(!flags.NoWarnings),
		generator.WithUserAgent(oafront.UserAgent()),
	}

	if name := firstNonEmpty(flags.Name, fileCfg.Name); name != "" {
		opts = append(opts, generator.WithName(name))
	}
	if lang := firstNonEmpty(flags.Language, fileCfg.Language); lang != "" {
		parsed, err := generator.ParseLanguage(lang)
		if err != nil {
			return nil, err
		}
		opts = append(opts, generator.WithLanguage(parsed))
	}

	url := firstNonEmpty(flags.URL, fileCfg.URL)
	if url == "" && isURL(specPath) {
		url = specPath
	}
	opts = append(opts, generator.WithURL(url))

	if flags.Verbose {
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, generator.WithLogger(parser.NewSlogAdapter(slog.New(handler))))
	}

	if specPath == StdinFilePath {
		opts = append(opts, generator.WithReader(stdin))
	} else {
		opts = append(opts, generator.WithFilePath(specPath))
	}
	return opts, nil
}

func checkDrift(result *generator.GenerateResult, output string, stdout, stderr io.Writer) error {
	diff, err := result.Diff(output)
	if err != nil {
		return fmt.Errorf("comparing files: %w", err)
	}
	if diff != "" {
		cliutil.Writef(stdout, "%s", diff)
		return fmt.Errorf("%s: %w", output, ErrDrift)
	}
	cliutil.Writef(stderr, "%s is up to date (%d %s)\n",
		output, len(result.Files), cliutil.Plural(len(result.Files), "file"))
	return nil
}

func printSummary(w io.Writer, result *generator.GenerateResult, specPath, output string) {
	cliutil.Writef(w, "OpenAPI Frontend Client Generator\n")
	cliutil.Writef(w, "=================================\n\n")
	cliutil.Writef(w, "oafront version: %s\n", oafront.Version())
	cliutil.Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	cliutil.Writef(w, "Source Size: %s\n", cliutil.FormatBytes(int(result.SourceSize)))
	cliutil.Writef(w, "Name: %s\n", result.Name)
	cliutil.Writef(w, "Language: %s\n", result.Language)
	cliutil.Writef(w, "Operations: %d\n", result.GeneratedOperations)
	cliutil.Writef(w, "Total Time: %v\n\n", result.LoadTime+result.GenerateTime)

	if len(result.Issues) > 0 {
		cliutil.Writef(w, "Generation Issues (%d):\n", len(result.Issues))
		for _, issue := range result.Issues {
			cliutil.Writef(w, "  %s\n", issue.String())
		}
		cliutil.Writef(w, "\n")
	}

	cliutil.Writef(w, "Generated Files (%d):\n", len(result.Files))
	for _, file := range result.Files {
		cliutil.Writef(w, "  - %s (%s)\n", filepath.Join(output, file.Name), cliutil.FormatBytes(len(file.Content)))
	}
	cliutil.Writef(w, "\n")

	if result.Success {
		cliutil.Writef(w, "✓ Generation successful")
		if result.InfoCount > 0 || result.WarningCount > 0 {
			cliutil.Writef(w, " (%d info, %d %s)", result.InfoCount, result.WarningCount, cliutil.Plural(result.WarningCount, "warning"))
		}
		cliutil.Writef(w, "\n")
		return
	}
	cliutil.Writef(w, "✗ Generation completed with %d critical issue(s)\n", result.CriticalCount)
}
