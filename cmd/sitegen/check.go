package main

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/peartree/landing/internal/audit"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/render"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check content records without rendering them",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := content.LoadCatalog(a.contentFS())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			issues := content.Validate(catalog)
			if len(issues) == 0 {
				fmt.Fprintf(out, "%d pages OK\n", len(catalog.Pages))
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.Header("Page", "Field", "Problem")
			for _, issue := range issues {
				if err := table.Append(issue.Slug, issue.Field, issue.Message); err != nil {
					return err
				}
			}
			if err := table.Render(); err != nil {
				return err
			}
			return fmt.Errorf("%d validation issues", len(issues))
		},
	}
}

func newAuditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Render every page and check the HTML against its content",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.loadCatalog()
			if err != nil {
				return err
			}
			renderer, err := a.renderer()
			if err != nil {
				return err
			}

			findings := make(map[string][]audit.Finding)
			for _, page := range catalog.Pages {
				var buf bytes.Buffer
				if err := renderer.RenderLanding(&buf, page, catalog.Practice, render.Site{}); err != nil {
					findings[page.Slug] = []audit.Finding{{Rule: audit.RuleParse, Message: err.Error()}}
					continue
				}
				if found := audit.Audit(buf.Bytes(), page, catalog.Practice); len(found) > 0 {
					findings[page.Slug] = found
				}
			}

			out := cmd.OutOrStdout()
			if len(findings) == 0 {
				fmt.Fprintf(out, "%d pages passed\n", len(catalog.Pages))
				return nil
			}
			if err := writeFindings(out, findings); err != nil {
				return err
			}
			return fmt.Errorf("%w: %d of %d pages", errAuditFailed, len(findings), len(catalog.Pages))
		},
	}
}
