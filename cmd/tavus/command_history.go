package main

import (
	"fmt"
	"io"
	"time"

	"github.com/picatz/tavus/internal/history"
	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List conversations recorded with --record",
		Long: `List conversations recorded with --record, oldest first.

Given a record ID, only that conversation is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd)
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			out := cmd.OutOrStdout()

			if len(args) == 1 {
				rec, ok, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no recorded conversation %q", args[0])
				}
				printRecord(out, rec)
				return nil
			}

			if clearAll, _ := cmd.Flags().GetBool("clear"); clearAll {
				n, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d recorded conversation(s)\n", n)
				return nil
			}

			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Fprintln(out, styleFaint.Render("No recorded conversations"))
				return nil
			}

			for _, rec := range records {
				printRecord(out, rec)
			}

			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "maximum number of conversations to list (0 lists all)")
	cmd.Flags().Bool("clear", false, "delete every recorded conversation")

	return cmd
}

func printRecord(w io.Writer, rec history.Record) {
	url := styleURL.Render(rec.URL)
	switch {
	case rec.URL == "":
		url = styleWarning.Render(fmt.Sprintf("no conversation URL (status %d)", rec.StatusCode))
	case !rec.Opened:
		url += styleFaint.Render(" (not opened)")
	}

	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		styleFaint.Render(rec.ID),
		rec.CreatedAt.Local().Format(time.DateTime),
		styleBold.Render(rec.Name),
		url,
	)
}
