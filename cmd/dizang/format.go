package main

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/dizang-faith/dizang-faith-web/internal/errors"
	"github.com/dizang-faith/dizang-faith-web/internal/git"
	"github.com/dizang-faith/dizang-faith-web/internal/pipeline"
	"github.com/dizang-faith/dizang-faith-web/internal/storage"
	"github.com/dizang-faith/dizang-faith-web/internal/verse"

	"github.com/spf13/cobra"
)

type formatFlags struct {
	all     bool
	dryRun  bool
	record  bool
	changed string
}

func newFormatVersesCmd(a *app) *cobra.Command {
	var f formatFlags
	cmd := &cobra.Command{
		Use:   "format-verses [sutra-file.json]",
		Short: "Split verse paragraphs on the full-width double space",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFormat(cmd, verse.SeparatorPass, f, args)
		},
	}
	cmd.Flags().BoolVar(&f.all, "all", false, "Process all sutras")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would be changed")
	cmd.Flags().BoolVar(&f.record, "record", false, "Record the run in the catalog database")
	cmd.Flags().StringVar(&f.changed, "changed", "", "Process only sutras changed since this git revision")
	return cmd
}

func newSplitLinesCmd(a *app) *cobra.Command {
	var f formatFlags
	cmd := &cobra.Command{
		Use:   "split-lines [sutra-file.json]",
		Short: "Split punctuated verse lines into one line per phrase",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFormat(cmd, verse.LinePass, f, args)
		},
	}
	cmd.Flags().BoolVar(&f.all, "all", false, "Process all sutras")
	cmd.Flags().BoolVar(&f.record, "record", false, "Record the run in the catalog database")
	cmd.Flags().StringVar(&f.changed, "changed", "", "Process only sutras changed since this git revision")
	return cmd
}

func printFormatUsage(cmd *cobra.Command, pass verse.Pass) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  dizang %s <sutra-file.json>  - Process single file\n", pass)
	fmt.Fprintf(out, "  dizang %s --all              - Process all sutras\n", pass)
	if pass == verse.SeparatorPass {
		fmt.Fprintf(out, "  dizang %s --dry-run          - Show what would be changed\n", pass)
	}
}

func (a *app) runFormat(cmd *cobra.Command, pass verse.Pass, f formatFlags, args []string) error {
	runner := pipeline.NewRunner(a.cfg.SutrasDir, pass, cmd.OutOrStdout(), a.logger)
	started := time.Now()

	run := &storage.FormatRun{Pass: pass.String(), StartedAt: started}
	switch {
	case len(args) == 1:
		path := runner.Resolve(args[0])
		if err := pipeline.CheckFile(path); err != nil {
			if apperrors.IsNotFound(err) {
				fmt.Fprintf(cmd.ErrOrStderr(), "File not found: %s\n", path)
				return errReported
			}
			return err
		}
		fr, err := runner.ProcessFile(path)
		if err != nil {
			return err
		}
		run.Target = path
		run.FilesTotal = 1
		if fr.Modified {
			run.FilesModified = 1
		}
		run.NewLines = fr.Result.NewLines()

	case f.all:
		sum, err := runner.ProcessAll()
		if err != nil {
			return err
		}
		run.Target = "--all"
		run.FilesTotal = len(sum.Files)
		run.FilesModified = sum.Modified
		run.NewLines = sum.NewLines()

	case f.changed != "":
		files, err := git.ChangedSutras(cmd.Context(), a.cfg.SutrasDir, f.changed)
		if err != nil {
			return err
		}
		sum, err := runner.ProcessFiles(files)
		if err != nil {
			return err
		}
		run.Target = "--changed " + f.changed
		run.FilesTotal = len(sum.Files)
		run.FilesModified = sum.Modified
		run.NewLines = sum.NewLines()

	case f.dryRun:
		return runner.DryRun()

	default:
		printFormatUsage(cmd, pass)
		return errReported
	}

	if f.record {
		return a.recordRun(cmd.Context(), run)
	}
	return nil
}

func (a *app) recordRun(ctx context.Context, run *storage.FormatRun) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := a.initStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RecordRun(ctx, run); err != nil {
		return err
	}
	a.logger.Info("run recorded", "id", run.ID, "pass", run.Pass, "modified", run.FilesModified)
	return nil
}
