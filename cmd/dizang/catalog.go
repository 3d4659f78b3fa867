package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dizang-faith/dizang-faith-web/internal/crawler"
	"github.com/dizang-faith/dizang-faith-web/internal/index"
	"github.com/dizang-faith/dizang-faith-web/internal/reader"
	"github.com/dizang-faith/dizang-faith-web/internal/storage"
	"github.com/dizang-faith/dizang-faith-web/internal/verse"

	"github.com/spf13/cobra"
)

func newIndexCmd(a *app) *cobra.Command {
	var (
		jsonPath  string
		recursive bool
	)
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the sutra catalog from the sutras directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "📂 Scanning directory: %s\n", a.cfg.SutrasDir)

			c := crawler.NewCrawler()
			if recursive {
				c.Recursive()
			}
			idx := index.NewIndexer(c)
			entries, err := idx.BuildCatalog(a.cfg.SutrasDir)
			if err != nil {
				return err
			}

			store, err := a.initStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveCatalog(cmd.Context(), entries); err != nil {
				return fmt.Errorf("failed to save catalog: %w", err)
			}
			if jsonPath != "" {
				if err := idx.SaveCatalog(entries, jsonPath); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Indexed %d file(s) into %s\n", len(entries), a.cfg.Database.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&jsonPath, "json", "", "Also write the catalog as JSON to this path")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit int
		pass  string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded formatting runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pass != "" {
				if _, err := verse.ParsePass(pass); err != nil {
					return err
				}
			}

			store, err := a.initStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if pass != "" {
				runs = filterRuns(runs, pass)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}
			printRuns(cmd, runs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	cmd.Flags().StringVar(&pass, "pass", "", "Only show runs of this pass (format-verses or split-lines)")
	return cmd
}

func filterRuns(runs []storage.FormatRun, pass string) []storage.FormatRun {
	out := runs[:0]
	for _, r := range runs {
		if r.Pass == pass {
			out = append(out, r)
		}
	}
	return out
}

func printRuns(cmd *cobra.Command, runs []storage.FormatRun) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tPASS\tTARGET\tMODIFIED\tNEW LINES")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%d\n",
			r.StartedAt.Local().Format(time.DateTime), r.Pass, r.Target, r.FilesModified, r.FilesTotal, r.NewLines)
	}
	w.Flush()
}

func newServeCmd(a *app) *cobra.Command {
	var (
		addr        string
		useCatalog  bool
		catalogJSON string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sutras to the web reader",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			store, closeStore, err := a.openCatalog(useCatalog, catalogJSON)
			if err != nil {
				return err
			}
			defer closeStore()

			opts := reader.Options{
				SutrasDir: a.cfg.SutrasDir,
				StaticDir: a.cfg.Server.StaticDir,
				Store:     store,
				Logger:    a.logger,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "🚀 Reader listening on %s\n", addr)
			return reader.NewServer(opts).ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&useCatalog, "catalog", false, "List sutras from the catalog database instead of scanning")
	cmd.Flags().StringVar(&catalogJSON, "catalog-json", "", "List sutras from a catalog written by index --json")
	cmd.MarkFlagsMutuallyExclusive("catalog", "catalog-json")
	return cmd
}

// openCatalog returns the catalog the reader serves from, or nil to scan
// the sutras directory per request.
func (a *app) openCatalog(useDB bool, jsonPath string) (storage.CatalogStore, func(), error) {
	switch {
	case jsonPath != "":
		entries, err := index.NewIndexer(crawler.NewCrawler()).LoadCatalog(jsonPath)
		if err != nil {
			return nil, nil, err
		}
		a.logger.Info("catalog loaded", "path", jsonPath, "entries", len(entries))
		return storage.NewMemoryCatalog(entries), func() {}, nil
	case useDB:
		store, err := a.initStore()
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}
