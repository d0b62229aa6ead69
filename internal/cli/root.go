package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rohmanhakim/amp-sanitizer/internal/build"
	"github.com/rohmanhakim/amp-sanitizer/internal/config"
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"github.com/rohmanhakim/amp-sanitizer/pkg/failure"
	"github.com/rohmanhakim/amp-sanitizer/pkg/hashutil"
	"github.com/spf13/cobra"
)

var (
	cfgFile            string
	outputDir          string
	useDocumentElement bool
	dryRun             bool
	exemptCodes        []string
	hashAlgo           string
	logLevel           string
)

// parseExemptCodes converts code names to validation codes, rejecting
// unknown names.
func parseExemptCodes(names []string) ([]validation.Code, error) {
	var codes []validation.Code
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			code, ok := validation.ParseCode(strings.ToUpper(part))
			if !ok {
				return nil, fmt.Errorf("%w: unknown error code %q", config.ErrInvalidConfig, part)
			}
			codes = append(codes, code)
		}
	}
	return codes, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "amp-sanitize [file]",
	Short: "Sanitize an HTML document into valid AMP HTML.",
	Long: `amp-sanitize validates every element and attribute of an HTML document
against the AMP tag and attribute rules and repairs or removes whatever does
not conform.

The document is read from the given file, or from standard input when no
file (or "-") is given. The sanitized document goes to standard output, or
into --output-dir. The validation report and the script extensions the
document requires are printed to standard error.`,
	Args:          cobra.MaximumNArgs(1),
	Version:       build.Summary(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		input := "-"
		if len(args) == 1 {
			input = args[0]
		}
		return run(cfg, input, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var classified failure.ClassifiedError
		if errors.As(err, &classified) {
			fmt.Fprintf(os.Stderr, "Error (%s): %s\n", classified.Severity(), err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path, .json or .yaml (e.g., /home/myuser/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "write the sanitized document into this directory instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&useDocumentElement, "use-document-element", true, "validate from <html>; false validates <body> only")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "report validation errors without changing or writing the document")
	rootCmd.PersistentFlags().StringArrayVar(&exemptCodes, "exempt-code", []string{}, "error code that is reported but never fixed (can be repeated)")
	rootCmd.PersistentFlags().StringVar(&hashAlgo, "hash-algo", "", "hash used for output filenames: sha256 or blake3")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// InitConfig reads in the config file or the flags.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in the config file or the flags, returning any
// errors. A config file takes precedence over every other flag.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	configBuilder := config.WithDefault()

	if !useDocumentElement {
		configBuilder = configBuilder.WithUseDocumentElement(false)
	}

	if len(exemptCodes) > 0 {
		codes, err := parseExemptCodes(exemptCodes)
		if err != nil {
			return config.Config{}, err
		}
		configBuilder = configBuilder.WithExemptCodes(codes)
	}

	if dryRun {
		configBuilder = configBuilder.WithDryRun(dryRun)
	}

	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if hashAlgo != "" {
		configBuilder = configBuilder.WithHashAlgo(hashutil.HashAlgo(strings.ToLower(hashAlgo)))
	}

	if logLevel != "" {
		configBuilder = configBuilder.WithLogLevel(logLevel)
	}

	return configBuilder.Build()
}

func ResetFlags() {
	cfgFile = ""
	outputDir = ""
	useDocumentElement = true
	dryRun = false
	exemptCodes = []string{}
	hashAlgo = ""
	logLevel = ""
}

// ExecuteForTest runs the root command with args and stdin, returning what
// it wrote to stdout and stderr.
func ExecuteForTest(args []string, stdin io.Reader) (string, string, error) {
	var stdout, stderr strings.Builder
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetUseDocumentElementForTest(use bool) {
	useDocumentElement = use
}

func SetDryRunForTest(dry bool) {
	dryRun = dry
}

func SetExemptCodesForTest(codes []string) {
	exemptCodes = codes
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}

func SetLogLevelForTest(level string) {
	logLevel = level
}
