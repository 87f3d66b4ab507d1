package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/peartree/landing/internal/audit"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/db"
	"github.com/peartree/landing/internal/export"
	"github.com/peartree/landing/internal/render"
	"github.com/peartree/landing/internal/service"
	"github.com/spf13/cobra"
)

var errAuditFailed = errors.New("audit failed")

func newBuildCmd(a *app) *cobra.Command {
	var (
		outDir      string
		published   bool
		runAudit    bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the whole site as static files",
		Long: `Render every landing page, the index, 404 page, sitemap.xml and robots.txt
into --out, then copy the static assets. The output directory is replaced
in one step once the build succeeds.

With --published only the pages the database marks published are built.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.loadCatalog()
			if err != nil {
				return err
			}
			renderer, err := a.renderer()
			if err != nil {
				return err
			}

			var source export.Source = export.CatalogSource{Catalog: catalog}
			site := func() render.Site { return render.Site{} }
			if published {
				if err := a.openDB(); err != nil {
					return err
				}
				source = export.StoreSource{Store: content.NewStore(catalog), Published: service.NewPageService(db.DB)}
				settings := service.NewSystemSettingService(db.DB)
				site = func() render.Site {
					current, _ := settings.GetSettings()
					return render.Site{Name: current.SiteName, Footer: current.FooterText}
				}
			}

			exporter, err := export.New(export.Options{
				Renderer:    renderer,
				Source:      source,
				Static:      a.staticFS(),
				BaseURL:     a.baseURL,
				Site:        site,
				Concurrency: concurrency,
				Audit:       runAudit,
				Logger:      a.logger,
			})
			if err != nil {
				return err
			}

			target, err := filepath.Abs(outDir)
			if err != nil {
				return err
			}
			result, err := exporter.Build(cmd.Context(), target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "built %d pages (%d files) into %s in %s\n",
				result.Pages, result.Files, target, result.Duration.Round(time.Millisecond))

			if len(result.Findings) > 0 {
				if err := writeFindings(out, result.Findings); err != nil {
					return err
				}
				return fmt.Errorf("%w: %d pages", errAuditFailed, len(result.Findings))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory")
	cmd.Flags().BoolVar(&published, "published", false, "build only the pages published in the database")
	cmd.Flags().BoolVar(&runAudit, "audit", true, "audit every rendered page and fail on findings")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "pages rendered in parallel (default 4)")
	return cmd
}

// writeFindings 每条检查结果输出一行，按 slug 排序。
func writeFindings(w io.Writer, findings map[string][]audit.Finding) error {
	slugs := make([]string, 0, len(findings))
	for slug := range findings {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	table := tablewriter.NewWriter(w)
	table.Header("Page", "Rule", "Finding")
	for _, slug := range slugs {
		for _, finding := range findings[slug] {
			if err := table.Append(slug, finding.Rule, finding.Message); err != nil {
				return err
			}
		}
	}
	return table.Render()
}
