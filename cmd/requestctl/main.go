package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"crisiscorner/internal/app/ds"
	"crisiscorner/internal/console"

	"github.com/spf13/cobra"
)

type options struct {
	api     string
	timeout time.Duration
}

func (o *options) client() *console.Client {
	return console.NewClient(o.api, console.WithTimeout(o.timeout))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "requestctl",
		Short:         "CLI client for Crisis Corner item requests API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVarP(&opts.api, "api", "a", "http://localhost:8080", "Crisis Corner service base URL")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP request timeout")

	rootCmd.AddCommand(
		newListCmd(opts),
		newCountsCmd(opts),
		newCreateCmd(opts),
		newSetStatusCmd(opts),
		newBatchStatusCmd(opts),
		newBatchDeleteCmd(opts),
		newConsoleCmd(opts),
	)
	return rootCmd
}

func newListCmd(opts *options) *cobra.Command {
	var page int
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseFilter(status)
			if err != nil {
				return err
			}

			c := opts.client()
			res, err := c.List(cmd.Context(), page, filter)
			if err != nil {
				return err
			}
			counts, err := c.StatusCounts(cmd.Context())
			if err != nil {
				return err
			}

			return console.Render(cmd.OutOrStdout(), console.State{
				CurrentPage:  res.Pagination.CurrentPage,
				ActiveStatus: filter,
				Counts:       counts,
				Records:      res.Records,
				Pagination:   res.Pagination,
			})
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number, starting at 1")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Status filter (pending, completed, approved, rejected)")
	return cmd
}

func newCountsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Show number of requests per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := opts.client().StatusCounts(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, st := range ds.Statuses {
				fmt.Fprintf(out, "%-10s %d\n", st, counts.Get(st))
			}
			fmt.Fprintf(out, "%-10s %d\n", "total", counts.Total)
			return nil
		},
	}
}

func newCreateCmd(opts *options) *cobra.Command {
	var name, item string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pending request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.client().Create(cmd.Context(), name, item)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", r.ID, r.Status)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Requestor name (required)")
	cmd.Flags().StringVarP(&item, "item", "i", "", "Requested item (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newSetStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status ID STATUS",
		Short: "Change status of one request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.client().UpdateStatus(cmd.Context(), args[0], ds.Status(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", r.ID, r.Status)
			return nil
		},
	}
}

func newBatchStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "batch-status STATUS ID...",
		Short: "Change status of several requests",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().BatchUpdateStatus(cmd.Context(), args[1:], ds.Status(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully updated %d requests (%d matched)\n", res.ModifiedCount, res.MatchedCount)
			return nil
		},
	}
}

func newBatchDeleteCmd(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "batch-delete ID...",
		Short: "Delete several requests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, fmt.Sprintf("Delete %d requests?", len(args))) {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
			res, err := opts.client().BatchDelete(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully deleted %d requests\n", res.DeletedCount)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newConsoleCmd(opts *options) *cobra.Command {
	var reconcile bool
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Interactive admin console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := console.NewController(opts.client(), console.WithReconcileOnStatusChange(reconcile))
			return console.RunREPL(cmd.Context(), ctrl, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&reconcile, "reconcile", false, "Reload the page after every single status change")
	return cmd
}

func parseFilter(s string) (ds.Status, error) {
	if s == "" || s == "all" {
		return "", nil
	}
	st, ok := ds.ParseStatus(s)
	if !ok {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
