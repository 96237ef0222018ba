// Command tubetext turns a transcript file into a textbook chapter,
// flashcards and a quiz without starting the HTTP server.
//
// Usage:
//
//	tubetext [-count 5] [-format markdown|json] [-url https://youtu.be/...] [transcript-file]
//
// The transcript is read from standard input when no file is given. LLM
// settings come from the same configuration as the server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/config"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/domain"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/generation"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/logger"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/platform/provider"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/session"
)

// options holds the parsed command line.
type options struct {
	count     int
	format    string
	sourceURL string
	path      string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so stdout carries only the document.
	log, err := logger.SetupWithWriter(cfg.Server, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logger: %v\n", err)
		os.Exit(1)
	}

	client, _, err := provider.NewClient(ctx, cfg.LLM, log)
	if err != nil {
		log.Error("Failed to initialize generation client", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, opts, client, os.Stdin, os.Stdout, log); err != nil {
		log.Error("Generation failed", "error", err)
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("tubetext", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var opts options
	fs.IntVar(&opts.count, "count", domain.DefaultQuestionCount,
		fmt.Sprintf("number of quiz questions, one of %v", domain.AllowedQuestionCounts))
	fs.StringVar(&opts.format, "format", formatMarkdown, "output format: markdown or json")
	fs.StringVar(&opts.sourceURL, "url", "", "video URL to cite in the output")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(errOut, "at most one transcript file may be given")
		return options{}, fmt.Errorf("too many arguments: %d", fs.NArg())
	}
	opts.path = fs.Arg(0)

	if opts.format != formatMarkdown && opts.format != formatJSON {
		fmt.Fprintf(errOut, "unknown format %q\n", opts.format)
		return options{}, fmt.Errorf("unknown format %q", opts.format)
	}
	return opts, nil
}

// run reads the transcript, generates a document and writes it to out.
func run(
	ctx context.Context,
	opts options,
	gen generation.Generator,
	stdin io.Reader,
	out io.Writer,
	log *slog.Logger,
) error {
	transcript, err := readTranscript(opts.path, stdin)
	if err != nil {
		return err
	}

	log.Info("Generating document", "transcript_length", len(transcript), "question_count", opts.count)
	doc, err := gen.Generate(ctx, transcript, opts.count)
	if err != nil {
		return err
	}

	if opts.format == formatJSON {
		return writeJSON(out, doc, opts.sourceURL)
	}
	return writeMarkdown(out, doc, opts.sourceURL)
}

func readTranscript(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read transcript from stdin: %w", err)
		}
		return string(raw), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript file: %w", err)
	}
	return string(raw), nil
}

// userMessage returns the message shown for err, matching what the web
// client would display.
func userMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return session.GenerationFailedMessage
}
