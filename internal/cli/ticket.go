package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewTicketCmd создаёт группу команд для управления тикетами.
func NewTicketCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Manage tickets",
	}

	cmd.AddCommand(
		newTicketListCmd(clientFn, outputFn),
		newTicketCreateCmd(clientFn, outputFn),
		newTicketShowCmd(clientFn, outputFn),
		newTicketResolveCmd(clientFn, outputFn),
		newTicketDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func ticketHeaders() []string {
	return []string{"ID", "TITLE", "STATUS", "URGENCY", "CREATED"}
}

func ticketRow(t TicketResponse) []string {
	return []string{t.ID, t.Title, t.Status, t.Urgency, t.CreatedAt}
}

func newTicketListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var opts ListTicketsOpts
	var admin bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if admin {
				tickets, err := client.AdminListTickets(opts)
				if err != nil {
					return err
				}

				headers := []string{"ID", "TITLE", "STATUS", "URGENCY", "TRIAGE_FAILED", "CREATED"}
				rows := make([][]string, len(tickets))
				for i, t := range tickets {
					rows[i] = []string{t.ID, t.Title, t.Status, t.Urgency, strconv.FormatBool(t.AITriageFailed), t.CreatedAt}
				}

				out.Print(headers, rows, tickets)
				return nil
			}

			tickets, err := client.ListTickets(opts)
			if err != nil {
				return err
			}

			rows := make([][]string, len(tickets))
			for i, t := range tickets {
				rows[i] = ticketRow(t)
			}

			out.Print(ticketHeaders(), rows, tickets)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status (open/processed/resolved/closed/failed_triage)")
	cmd.Flags().StringVar(&opts.Urgency, "urgency", "", "Filter by urgency (Low/Medium/High)")
	cmd.Flags().StringVar(&opts.Search, "search", "", "Search in title and content")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, "Items per page")
	cmd.Flags().BoolVar(&admin, "admin", false, "Use the admin view (includes AI draft and triage audit)")

	return cmd
}

func newTicketCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var title, content string
	var categoryID int64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			req := CreateTicketRequest{Title: title, Content: content}
			if cmd.Flags().Changed("category-id") {
				req.CategoryID = &categoryID
			}

			ticket, err := client.CreateTicket(req)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Ticket created: %s", ticket.ID))
			out.Print(ticketHeaders(), [][]string{ticketRow(*ticket)}, ticket)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Ticket title (required)")
	cmd.Flags().StringVar(&content, "content", "", "Ticket content (required)")
	cmd.Flags().Int64Var(&categoryID, "category-id", 0, "Category ID")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("content")

	return cmd
}

func newTicketShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var admin bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show ticket details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if admin {
				ticket, err := client.AdminGetTicket(args[0])
				if err != nil {
					return err
				}

				out.Print(
					[]string{"ID", "TITLE", "STATUS", "URGENCY", "TRIAGE_FAILED", "DRAFT"},
					[][]string{{ticket.ID, ticket.Title, ticket.Status, ticket.Urgency, strconv.FormatBool(ticket.AITriageFailed), ticket.AIDraft}},
					ticket,
				)
				return nil
			}

			ticket, err := client.GetTicket(args[0])
			if err != nil {
				return err
			}

			out.Print(ticketHeaders(), [][]string{ticketRow(*ticket)}, ticket)
			return nil
		},
	}

	cmd.Flags().BoolVar(&admin, "admin", false, "Use the admin view (includes AI draft and triage audit)")

	return cmd
}

func newTicketResolveCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var draft string

	cmd := &cobra.Command{
		Use:   "resolve ID",
		Short: "Resolve a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			var draftPtr *string
			if cmd.Flags().Changed("draft") {
				draftPtr = &draft
			}

			ticket, err := client.ResolveTicket(args[0], draftPtr)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Ticket resolved: %s", ticket.ID))
			out.Print(ticketHeaders(), [][]string{ticketRow(*ticket)}, ticket)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft, "draft", "", "Final response text (replaces the AI draft)")

	return cmd
}

func newTicketDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.DeleteTicket(args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Ticket deleted: %s", args[0]))
			return nil
		},
	}
}
