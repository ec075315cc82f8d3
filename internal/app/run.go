package app

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"

	"github.com/gdcc/mdb/internal/ctxlog"
	"github.com/gdcc/mdb/internal/fsutil"
	"github.com/gdcc/mdb/internal/tsv"
)

// Run checks the configured input. A file is checked directly; a directory
// is walked and every .tsv file in it is checked. All diagnostics are
// rendered to the application's output writer; a non-nil error means at
// least one input did not validate or could not be read at all.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "input", a.config.InputPath)

	paths, err := a.collectInputs()
	if err != nil {
		return err
	}
	a.logger.Debug("Inputs collected.", "count", len(paths))

	failed := 0
	for _, path := range paths {
		if err := a.checkFile(ctx, path); err != nil {
			a.logger.Debug("Input rejected.", "path", path, "error", err)
			failed++
		}
	}

	a.logger.Debug("App.Run method finished.", "checked", len(paths), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed validation", failed, len(paths))
	}
	return nil
}

// collectInputs resolves the input path into the list of files to check.
func (a *App) collectInputs() ([]string, error) {
	info, err := os.Stat(a.config.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	if !info.IsDir() {
		return []string{a.config.InputPath}, nil
	}

	paths, err := fsutil.FindFilesByExtension(a.config.InputPath, ".tsv")
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .tsv files found under %s", a.config.InputPath)
	}
	return paths, nil
}

// checkFile parses one input file and renders its diagnostics.
func (a *App) checkFile(ctx context.Context, path string) error {
	lines, err := readLines(path)
	if err != nil {
		fmt.Fprintf(a.outW, "%s: error: %s\n", path, err)
		return err
	}

	doc, diags := tsv.ParseDocument(ctx, lines, a.types, a.dialect)
	if diags.HasErrors() {
		a.renderDiagnostics(path, diags)
		return fmt.Errorf("%s: %d validation errors", path, len(diags))
	}

	a.logger.Info("Input validated.",
		"path", path, "block", doc.Block.Name(), "fields", len(doc.Fields))
	fmt.Fprintf(a.outW, "%s: metadata block %q with %d fields is valid\n",
		path, doc.Block.Name(), len(doc.Fields))
	return nil
}

// renderDiagnostics writes one line per diagnostic, compiler style, so
// editors can jump to the offending cell.
func (a *App) renderDiagnostics(path string, diags hcl.Diagnostics) {
	for _, diag := range diags {
		pos := hcl.Pos{Line: 1, Column: 1}
		if diag.Subject != nil {
			pos = diag.Subject.Start
		}
		fmt.Fprintf(a.outW, "%s:%d:%d: error: %s: %s\n",
			path, pos.Line, pos.Column, diag.Summary, diag.Detail)
	}
}
