package generator

import (
	"fmt"
	"io"

	"github.com/erraggy/oafront/internal/options"
	"github.com/erraggy/oafront/oaserrors"
	"github.com/erraggy/oafront/parser"
)

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	bytes    []byte
	reader   io.Reader
	parsed   *parser.ParseResult

	name        string
	url         string
	language    Language
	strictMode  bool
	includeInfo bool
	userAgent   string
	logger      parser.Logger
	idFunc      OperationIDFunc
}

// GenerateWithOptions generates a client using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithName("petstore"),
//	    generator.WithLanguage(generator.LanguageJS),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		Name:            cfg.name,
		URL:             cfg.url,
		Language:        cfg.language,
		StrictMode:      cfg.strictMode,
		IncludeInfo:     cfg.includeInfo,
		UserAgent:       cfg.userAgent,
		Logger:          cfg.logger,
		OperationIDFunc: cfg.idFunc,
	}

	switch {
	case cfg.filePath != nil:
		return g.Generate(*cfg.filePath)
	case cfg.parsed != nil:
		return g.GenerateParsed(*cfg.parsed)
	}

	parseOpts := []parser.Option{parser.WithLogger(cfg.logger)}
	if cfg.reader != nil {
		parseOpts = append(parseOpts, parser.WithReader(cfg.reader))
	} else {
		parseOpts = append(parseOpts, parser.WithBytes(cfg.bytes))
	}
	parseResult, err := parser.ParseWithOptions(parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse specification: %w", err)
	}
	return g.GenerateParsed(*parseResult)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		name:        DefaultName,
		language:    LanguageTS,
		includeInfo: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource("input",
		"must specify an input source (use WithFilePath, WithBytes, WithReader, or WithParsed)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.bytes != nil, cfg.reader != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies raw YAML or JSON as the input source
func WithBytes(data []byte) Option {
	return func(cfg *generateConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.bytes = data
		return nil
	}
}

// WithReader specifies a reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *generateConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "reader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithName sets the module name used for file names and the aggregate
// interface. Default: "api"
func WithName(name string) Option {
	return func(cfg *generateConfig) error {
		if err := ValidateName(name); err != nil {
			return err
		}
		cfg.name = name
		return nil
	}
}

// WithURL records the document's source URL in the generated headers.
func WithURL(url string) Option {
	return func(cfg *generateConfig) error {
		cfg.url = url
		return nil
	}
}

// WithLanguage selects the implementation language.
// Default: LanguageTS
func WithLanguage(lang Language) Option {
	return func(cfg *generateConfig) error {
		parsed, err := ParseLanguage(string(lang))
		if err != nil {
			return err
		}
		cfg.language = parsed
		return nil
	}
}

// WithStrictMode enables or disables strict mode (fail on warnings)
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithIncludeInfo enables or disables informational messages
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "" (uses parser default)
func WithUserAgent(ua string) Option {
	return func(cfg *generateConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets the logger for parsing and generation.
func WithLogger(l parser.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithOperationIDFunc replaces the operation id generator.
func WithOperationIDFunc(fn OperationIDFunc) Option {
	return func(cfg *generateConfig) error {
		if fn == nil {
			return &oaserrors.ConfigError{Option: "operation id func", Message: "function cannot be nil"}
		}
		cfg.idFunc = fn
		return nil
	}
}
