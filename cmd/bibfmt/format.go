package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/bibfmt/internal/config"
	"github.com/matsen/bibfmt/internal/importer"
	"github.com/matsen/bibfmt/internal/reference"
)

// stdinName is the file argument that selects standard input.
const stdinName = "-"

func runFormat(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "%s: %v", config.GlobalConfigPath(), err)
	}
	fmtFlags.applyConfig(cmd.Flags().Changed, cfg)

	p, err := newPipeline(&fmtFlags)
	if err != nil {
		code := ExitError
		var pe *pipelineError
		if errors.As(err, &pe) {
			code = pe.code
		}
		exitWithError(code, "%v", err)
	}

	code := formatFiles(cmd.Context(), p, args, fmtFlags.inPlace, fmtFlags.merge, cmd.InOrStdin(), cmd.OutOrStdout())
	if err := p.Close(); err != nil {
		code = outputError(ExitError, "closing DOI cache: %v", err)
	}
	if code != ExitSuccess {
		os.Exit(code)
	}
	return nil
}

// formatFiles formats each input and writes the result to out, or back to
// the file with inPlace. With merge all inputs become one database. A file
// that fails to parse is reported and skipped; the returned exit code
// reflects the last failure.
func formatFiles(ctx context.Context, p *pipeline, files []string, inPlace, merge bool, in io.Reader, out io.Writer) int {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(files) == 0 {
		files = []string{stdinName}
	}
	if inPlace {
		if merge {
			return outputError(ExitError, "--in-place cannot be combined with --merge")
		}
		for _, f := range files {
			if f == stdinName {
				return outputError(ExitError, "--in-place needs file arguments, not stdin")
			}
		}
	}

	if merge {
		return formatMerged(ctx, p, files, in, out)
	}

	code := ExitSuccess
	for _, file := range files {
		lib, err := readLibrary(file, in)
		if err != nil {
			code = outputError(exitCodeFor(err), "%v", err)
			continue
		}

		text, err := p.format(ctx, lib)
		if err != nil {
			code = outputError(ExitDataError, "%s: %v", displayName(file), err)
			continue
		}

		if inPlace {
			if err := writeFileAtomic(file, text); err != nil {
				code = outputError(ExitError, "writing %s: %v", file, err)
			}
			continue
		}
		if _, err := io.WriteString(out, text); err != nil {
			return outputError(ExitError, "writing output: %v", err)
		}
	}
	return code
}

func formatMerged(ctx context.Context, p *pipeline, files []string, in io.Reader, out io.Writer) int {
	code := ExitSuccess
	lib := reference.NewLibrary()
	for _, file := range files {
		l, err := readLibrary(file, in)
		if err != nil {
			code = outputError(exitCodeFor(err), "%v", err)
			continue
		}
		mergeInto(lib, l)
	}

	text, err := p.format(ctx, lib)
	if err != nil {
		return outputError(ExitDataError, "%v", err)
	}
	if _, err := io.WriteString(out, text); err != nil {
		return outputError(ExitError, "writing output: %v", err)
	}
	return code
}

// readLibrary reads and parses one input.
func readLibrary(file string, stdin io.Reader) (*reference.Library, error) {
	var data []byte
	var err error
	if file == stdinName {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", displayName(file), err)
	}
	return importer.Parse(displayName(file), data)
}

func exitCodeFor(err error) int {
	var pe *importer.ParseError
	if errors.As(err, &pe) {
		return ExitDataError
	}
	return ExitError
}

func displayName(file string) string {
	if file == stdinName {
		return "<stdin>"
	}
	return file
}
