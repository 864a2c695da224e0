// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"portfolio/internal/models"
)

// parseIDs parses message ids, naming the first invalid one.
func parseIDs(args []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(args))
	for _, a := range args {
		id, err := uuid.Parse(a)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", a, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printMessages(w io.Writer, items []models.ContactMessage) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSTATE\tFROM\tSUBJECT")
	for _, m := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s <%s>\t%s\n",
			m.ID, m.CreatedAt.Format("2006-01-02 15:04"), m.State(), m.Name, m.Email, m.Subject)
	}
	tw.Flush()
}

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List and triage contact messages",
	}

	var limit int
	var unread bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List contact messages, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				items, err := a.contacts.List(limit, unread)
				if err != nil {
					return err
				}
				printMessages(cmd.OutOrStdout(), items)
				return nil
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum number of messages, 0 for all")
	list.Flags().BoolVar(&unread, "unread", false, "only show unread messages")
	cmd.AddCommand(list)

	actions := []struct {
		use, short string
		apply      func(a *app, ids []uuid.UUID) (int64, error)
	}{
		{"read", "Mark messages as read", func(a *app, ids []uuid.UUID) (int64, error) { return a.contacts.MarkRead(ids) }},
		{"unread", "Mark messages as unread", func(a *app, ids []uuid.UUID) (int64, error) { return a.contacts.MarkUnread(ids) }},
		{"replied", "Mark messages as replied", func(a *app, ids []uuid.UUID) (int64, error) { return a.contacts.MarkReplied(ids) }},
	}
	for _, act := range actions {
		cmd.AddCommand(&cobra.Command{
			Use:   act.use + " <ids...>",
			Short: act.short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, err := parseIDs(args)
				if err != nil {
					return err
				}
				return withApp(cmd, func(a *app) error {
					n, err := act.apply(a, ids)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d messages marked %s.\n", n, act.use)
					return nil
				})
			},
		})
	}
	return cmd
}
