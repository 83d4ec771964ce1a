package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/unclebandit/gapgrabber-web/internal/model"
	"github.com/unclebandit/gapgrabber-web/internal/service"
	"github.com/unclebandit/gapgrabber-web/internal/view"
)

func newSlotsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List scheduled slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slots, err := c.adapter().ListSlots(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(slots) == 0 {
				fmt.Fprintln(out, "No upcoming slots")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tTIME\tJOB\tCUSTOMER\tSTATUS")
			for _, s := range slots {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					s.Key, view.SlotRange(s.StartTime, s.EndTime, c.cfg.Location()), s.JobType, s.CustomerName, s.Status)
			}
			return tw.Flush()
		},
	}
}

func newWorkflowsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "workflows",
		Short: "List gap-filling workflows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workflows, err := c.adapter().ListWorkflows(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(workflows) == 0 {
				fmt.Fprintln(out, "No gaps being filled")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tSLOT\tSTATUS\tCANDIDATES")
			for i := range workflows {
				wf := &workflows[i]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", wf.Key, wf.SlotSummary, model.StatusLabel(string(wf.Status)), wf.CountLabel())
			}
			return tw.Flush()
		},
	}
}

func newWorkflowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "workflow <key>",
		Short: "Show one workflow and its contacted candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := c.adapter().GetWorkflow(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printWorkflow(cmd.OutOrStdout(), c, wf)
			return nil
		},
	}
}

func printWorkflow(out io.Writer, c *cli, wf *model.Workflow) {
	fmt.Fprintf(out, "%s  %s  [%s]\n", wf.Key, wf.SlotSummary, model.StatusLabel(string(wf.Status)))
	if accepted := wf.AcceptedCandidate(); accepted != nil {
		fmt.Fprintf(out, "Slot filled by %s\n", accepted.Name)
	} else {
		fmt.Fprintln(out, "Waiting for replies from contacted people")
	}
	fmt.Fprintf(out, "Contacted People (%d)\n", len(wf.Candidates))

	now := c.now()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, cand := range wf.Candidates {
		when := ""
		switch {
		case cand.WillContactAt != nil && cand.WillContactAt.After(now):
			when = "will contact " + view.FormatTimeUntil(*cand.WillContactAt, now)
		case cand.ContactedAt != nil:
			when = "contacted " + view.FormatTimeAgo(*cand.ContactedAt, now)
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\n", cand.CustomerID, cand.Name, cand.Phone, model.StatusLabel(string(cand.Status)), when)
	}
	_ = tw.Flush()
}

func newMessagesCmd(c *cli) *cobra.Command {
	var campaignID int
	cmd := &cobra.Command{
		Use:   "messages <customerId>",
		Short: "Show a customer's conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			customerID, err := strconv.Atoi(args[0])
			if err != nil || customerID <= 0 {
				return fmt.Errorf("invalid customer id %q", args[0])
			}
			var campaign *int
			if cmd.Flags().Changed("campaign") {
				campaign = &campaignID
			}

			thread, err := c.adapter().GetCustomerMessages(cmd.Context(), customerID, campaign)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", thread.Customer.Name, thread.Customer.Phone)
			if len(thread.Messages) == 0 {
				fmt.Fprintln(out, "No messages yet")
				return nil
			}
			for _, m := range thread.Messages {
				arrow := "<"
				if m.Direction == model.Outbound {
					arrow = ">"
				}
				fmt.Fprintf(out, "%s %s  %s\n", arrow, view.MessageTime(m.Timestamp, c.cfg.Location()), m.Content)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&campaignID, "campaign", 0, "restrict to one campaign")
	return cmd
}

func newFillCmd(c *cli) *cobra.Command {
	req := service.NewFillRequest("")
	cmd := &cobra.Command{
		Use:   "fill <slotKey>",
		Short: "Cancel a slot and start contacting people to fill it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return err
			}
			wf, err := c.adapter().StartFillWorkflow(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Started contacting people to fill this slot")
			printWorkflow(cmd.OutOrStdout(), c, wf)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Reason, "reason", "", "reason for the gap (required)")
	cmd.Flags().IntVar(&req.DiscountPercent, "discount", service.DefaultDiscountPercent, "discount percentage (0-100)")
	cmd.Flags().IntVar(&req.WaitTimeMinutes, "wait", service.DefaultWaitTimeMinutes, "minutes before contacting the next person (1-60)")
	return cmd
}
