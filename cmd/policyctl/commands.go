package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/medassn/policy-content/pkg/policycontent"
	"github.com/medassn/policy-content/pkg/policycontent/client"
	"github.com/medassn/policy-content/pkg/policycontent/export"
)

// newContentCommand creates the content command group
func newContentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Manage policy beliefs and positional statements",
	}
	cmd.AddCommand(
		newContentListCommand(),
		newContentGetCommand(),
		newContentStatusCommand(),
		newContentDeleteCommand(),
		newContentAnalyticsCommand(),
		newContentExportCommand(),
	)
	return cmd
}

func newContentListCommand() *cobra.Command {
	var status, category, search, typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content items with optional filtering",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			items, err := c.ListContent(context.Background(), client.ContentListOptions{
				Status:   policycontent.ContentStatus(status),
				Category: category,
				Search:   search,
				Type:     policycontent.ContentType(typ),
			})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tTITLE\tCATEGORY\tSTATUS\tVIEWS\tDOWNLOADS")
			for _, item := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\n",
					item.ID, item.Type, item.Title, item.Category, item.Status, item.ViewCount, item.DownloadCount)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (Published, Draft, Archived)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search")
	cmd.Flags().StringVar(&typ, "type", "", "Filter by type (PolicyBelief, PositionalStatement)")
	return cmd
}

func newContentGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one content item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			item, err := c.GetContent(context.Background(), id)
			if err != nil {
				return err
			}

			fmt.Printf("ID:        %d\n", item.ID)
			fmt.Printf("Type:      %s\n", item.Type)
			fmt.Printf("Title:     %s\n", item.Title)
			fmt.Printf("Category:  %s\n", item.Category)
			fmt.Printf("Status:    %s\n", item.Status)
			fmt.Printf("Tags:      %s\n", strings.Join(item.Tags, ", "))
			fmt.Printf("Summary:   %s\n", item.Summary)
			switch item.Type {
			case policycontent.TypePolicyBelief:
				fmt.Printf("Priority:  %s\n", item.Priority)
				fmt.Printf("Audience:  %s\n", strings.Join(item.TargetAudience, ", "))
				fmt.Printf("Regions:   %s\n", strings.Join(item.Region, ", "))
			case policycontent.TypePositionalStatement:
				fmt.Printf("Pages:     %d\n", item.PageCount)
				fmt.Printf("Countries: %s\n", strings.Join(item.CountryFocus, ", "))
			}
			return nil
		},
	}
}

func newContentStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Transition a content item's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := policycontent.ParseContentStatus(args[1])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if _, err := c.UpdateContentStatus(context.Background(), id, status); err != nil {
				return err
			}
			fmt.Printf("Content %d set to %s\n", id, args[1])
			return nil
		},
	}
}

func newContentDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a content item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.DeleteContent(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Content %d deleted\n", id)
			return nil
		},
	}
}

func newContentAnalyticsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show server-computed content analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			analytics, err := c.ContentAnalytics(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("Total items:     %d\n", analytics.TotalItems)
			fmt.Printf("Total views:     %d\n", analytics.TotalViews)
			fmt.Printf("Total downloads: %d\n", analytics.TotalDownloads)
			for status, count := range analytics.ByStatus {
				fmt.Printf("  %s: %d\n", status, count)
			}
			return nil
		},
	}
}

func newContentExportCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export content items to CSV or XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			items, err := c.ListContent(context.Background(), client.ContentListOptions{})
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()

			switch format {
			case "csv":
				err = export.WriteContentCSV(f, items)
			case "xlsx":
				err = export.WriteContentXLSX(f, items)
			default:
				err = fmt.Errorf("unsupported format: %s", format)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d items to %s\n", len(items), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Export format: csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "content-export.csv", "Output file path")
	return cmd
}

// newWorkshopsCommand creates the workshops command group
func newWorkshopsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workshops",
		Short: "Manage workshops",
	}

	var status, typ, search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List workshops with optional filtering",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			workshops, err := c.ListWorkshops(context.Background(), client.WorkshopListOptions{
				Status: policycontent.WorkshopStatus(status),
				Type:   policycontent.WorkshopType(typ),
				Search: search,
			})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tDATE\tTYPE\tSTATUS\tREGISTERED")
			for _, ws := range workshops {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d/%d\n",
					ws.ID, ws.Title, ws.Date, ws.Type, ws.Status, ws.Registered, ws.Capacity)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "Filter by status")
	list.Flags().StringVar(&typ, "type", "", "Filter by type (Online, In-Person, Hybrid)")
	list.Flags().StringVar(&search, "search", "", "Free-text search")

	setStatus := &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Transition a workshop's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := policycontent.ParseWorkshopStatus(args[1])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if _, err := c.UpdateWorkshopStatus(context.Background(), id, status); err != nil {
				return err
			}
			fmt.Printf("Workshop %d set to %s\n", id, args[1])
			return nil
		},
	}

	cmd.AddCommand(list, setStatus)
	return cmd
}

// newCollaborationsCommand creates the collaborations command group
func newCollaborationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collaborations",
		Short: "Moderate collaboration submissions",
	}

	var status, search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List collaboration submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			subs, err := c.ListCollaborations(context.Background(), client.CollaborationListOptions{
				Status: policycontent.CollaborationStatus(status),
				Search: search,
			})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPROJECT\tINSTITUTION\tLEAD\tSTATUS")
			for _, sub := range subs {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
					sub.ID, sub.ProjectTitle, sub.Institution, sub.ProjectLead, sub.Status)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "Filter by status (Pending, Approved, Rejected, Needs Info)")
	list.Flags().StringVar(&search, "search", "", "Free-text search")

	setStatus := &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Transition a submission's moderation status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := policycontent.ParseCollaborationStatus(args[1])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if _, err := c.UpdateCollaborationStatus(context.Background(), id, status); err != nil {
				return err
			}
			fmt.Printf("Collaboration %d set to %s\n", id, args[1])
			return nil
		},
	}

	cmd.AddCommand(list, setStatus)
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}
