package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/db"
	"github.com/peartree/landing/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Sync the content catalog into the database",
		Long: `Create or update one database record per catalog page. Pages that are no
longer in the catalog are unpublished, never deleted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.loadCatalog()
			if err != nil {
				return err
			}
			if err := a.openDB(); err != nil {
				return err
			}

			result, err := service.NewPageService(db.DB).Import(catalog)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Created", "Updated", "Unchanged", "Retired")
			if err := table.Append(
				strconv.Itoa(result.Created),
				strconv.Itoa(result.Updated),
				strconv.Itoa(result.Unchanged),
				strconv.Itoa(result.Retired),
			); err != nil {
				return err
			}
			return table.Render()
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var (
		kind          string
		publishedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored pages with their view counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter service.PageFilter
			if kind != "" {
				parsed, err := content.ParseKind(kind)
				if err != nil {
					return err
				}
				filter.Kind = parsed
			}
			filter.PublishedOnly = publishedOnly

			if err := a.openDB(); err != nil {
				return err
			}
			records, err := service.NewPageService(db.DB).List(filter)
			if err != nil {
				return err
			}

			ids := make([]uint, 0, len(records))
			for _, record := range records {
				ids = append(ids, record.ID)
			}
			stats, err := service.NewAnalyticsService(db.DB).PageStatsMap(ids)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Slug", "Kind", "Title", "Status", "Views", "Visitors")
			for _, record := range records {
				var views, visitors uint64
				if stat, ok := stats[record.ID]; ok {
					views, visitors = stat.PageViews, stat.UniqueVisitors
				}
				if err := table.Append(
					record.Slug,
					record.Kind,
					record.Title,
					pageStatus(record),
					strconv.FormatUint(views, 10),
					strconv.FormatUint(visitors, 10),
				); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only pages of this kind (alternative, review, service)")
	cmd.Flags().BoolVar(&publishedOnly, "published", false, "only published pages")
	return cmd
}

func pageStatus(record db.LandingPage) string {
	switch {
	case record.Retired:
		return "retired"
	case record.Published:
		return "published"
	default:
		return "hidden"
	}
}

func newInitUserCmd(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "init-user",
		Short: "Create an admin user if it does not exist yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}
			if err := a.openDB(); err != nil {
				return err
			}

			created, err := db.EnsureUser(db.DB, username, password)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "admin user %q created\n", username)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "admin user %q already exists\n", username)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}
