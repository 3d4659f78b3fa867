package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dizang-faith/dizang-faith-web/internal/cbeta"
	apperrors "github.com/dizang-faith/dizang-faith-web/internal/errors"
	"github.com/dizang-faith/dizang-faith-web/internal/pipeline"
	"github.com/dizang-faith/dizang-faith-web/internal/schema"
	"github.com/dizang-faith/dizang-faith-web/internal/script"
	"github.com/dizang-faith/dizang-faith-web/internal/sutra"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "validate <sutra-file.json>...",
		Short: "Check sutra files against the document schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, arg := range args {
				path := pipeline.ResolvePath(a.cfg.SutrasDir, arg)
				raw, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "File not found: %s\n", path)
					failed++
					continue
				}

				if schemaPath != "" {
					err = schema.ValidateWith(schemaPath, raw)
				} else {
					err = schema.Validate(raw)
				}
				if err != nil {
					fmt.Fprintf(out, "  ✗ %s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(out, "  ✓ Valid: %s\n", path)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Validate against this schema file instead of the built-in one")
	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "convert <sutra-file.json>",
		Short: "Write the Traditional (or Simplified) variant of a sutra",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := script.Name(to)
			if target != script.Traditional && target != script.Simplified {
				return fmt.Errorf("unknown script %q (want %s or %s)", to, script.Traditional, script.Simplified)
			}

			path := pipeline.ResolvePath(a.cfg.SutrasDir, args[0])
			doc, err := sutra.LoadFile(path)
			if apperrors.IsNotFound(err) {
				fmt.Fprintf(cmd.ErrOrStderr(), "File not found: %s\n", path)
				return errReported
			}
			if err != nil {
				return err
			}

			id, _ := script.FromFileName(filepath.Base(path))
			if doc.ID != "" {
				id = doc.ID
			}
			outPath := filepath.Join(filepath.Dir(path), script.FileName(id, target))
			if outPath == path {
				return fmt.Errorf("refusing to overwrite source %s", path)
			}

			converted := script.ConvertDocument(doc, script.Converter(target))
			if err := sutra.SaveFile(outPath, converted); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  ✓ Wrote: %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", string(script.Traditional), "Target script: traditional or simplified")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var (
		meta    cbeta.Meta
		opts    cbeta.Options
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "import <source.txt>",
		Short: "Import a CBETA plain-text source as a sutra document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if meta.ID == "" || meta.Title == "" {
				return fmt.Errorf("--id and --title are required")
			}

			src, err := os.Open(args[0])
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "File not found: %s\n", args[0])
				return errReported
			}
			defer src.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Parsing content...")
			paragraphs, err := cbeta.Parse(src, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Found %d paragraphs\n", len(paragraphs))

			doc := cbeta.Build(paragraphs, meta)
			raw, err := sutra.Encode(doc)
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", meta.ID, err)
			}
			if err := schema.Validate(raw); err != nil {
				return err
			}

			if outPath == "" {
				outPath = filepath.Join(a.cfg.SutrasDir, script.FileName(meta.ID, script.Simplified))
			}
			if err := sutra.SaveFile(outPath, doc); err != nil {
				return err
			}
			fmt.Fprintf(out, "Done! Updated: %s\n", outPath)
			fmt.Fprintf(out, "Paragraphs: %d\n", len(doc.Chapters[0].Paragraphs))
			return nil
		},
	}
	cmd.Flags().StringVar(&meta.ID, "id", "", "Sutra id (file name without .json)")
	cmd.Flags().StringVar(&meta.Title, "title", "", "Simplified title")
	cmd.Flags().StringVar(&meta.Translator, "translator", "", "Translator line")
	cmd.Flags().StringVar(&opts.SourceTitle, "source-title", cbeta.DefaultTitle, "Title line to skip in the source")
	cmd.Flags().BoolVar(&opts.NFC, "nfc", false, "Normalize source lines to Unicode NFC (folds compatibility ideographs)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (default <dir>/<id>.json)")
	return cmd
}
