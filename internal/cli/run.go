package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/rohmanhakim/amp-sanitizer/internal/config"
	"github.com/rohmanhakim/amp-sanitizer/internal/document"
	"github.com/rohmanhakim/amp-sanitizer/internal/metadata"
	"github.com/rohmanhakim/amp-sanitizer/internal/sanitizer"
	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/rohmanhakim/amp-sanitizer/internal/storage"
	"github.com/rohmanhakim/amp-sanitizer/pkg/fileutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// run reads, sanitizes and writes one document.
func run(cfg config.Config, input string, stdin io.Reader, stdout, stderr io.Writer) error {
	logger, err := newLogger(cfg.LogLevel(), stderr)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	recorder := metadata.NewRecorder(logger)

	data, readErr := fileutil.ReadInput(input, stdin)
	if readErr != nil {
		return fmt.Errorf("reading %s: %w", input, readErr)
	}

	parser := document.NewHTMLParser(&recorder)
	doc, parseErr := parser.Parse(input, data)
	if parseErr != nil {
		return parseErr
	}

	param := sanitizer.SanitizeParam{
		UseDocumentElement: cfg.UseDocumentElement(),
		ShouldSanitize:     cfg.Decider(),
	}
	htmlSanitizer := sanitizer.NewHTMLSanitizer(spec.DefaultTable(), param, &recorder)
	result, sanitizeErr := htmlSanitizer.Sanitize(doc.Root())
	if sanitizeErr != nil {
		return sanitizeErr
	}

	writeReport(stderr, result)

	if cfg.DryRun() {
		return nil
	}

	out, renderErr := parser.Render(doc)
	if renderErr != nil {
		return renderErr
	}

	if cfg.OutputDir() == "" {
		_, err := stdout.Write(out)
		return err
	}

	sink := storage.NewLocalSink(&recorder)
	writeResult, writeErr := sink.Write(cfg.OutputDir(), input, out, cfg.HashAlgo())
	if writeErr != nil {
		return writeErr
	}
	fmt.Fprintf(stderr, "written: %s\n", writeResult.Path())
	return nil
}

// writeReport prints the required extensions and one line per validation
// error.
func writeReport(w io.Writer, result sanitizer.SanitizedHTMLDoc) {
	if exts := result.RequiredExtensions(); len(exts) > 0 {
		fmt.Fprintf(w, "required extensions: %s\n", strings.Join(exts, ", "))
	}
	for _, r := range result.Reports() {
		status := "fixed"
		if !r.Sanitized {
			status = "kept"
		}
		fmt.Fprintf(w, "%s %s: %s\n", status, r.Error.Code, r.Error.Message())
	}
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidConfig, err.Error())
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core), nil
}
