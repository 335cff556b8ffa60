package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/laptop_store/internal/client"
)

func newOrdersCmd(newClient func() *client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Place and review your orders",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your orders with subtotals and the order total",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				sum, err := newClient().MyOrderSummary(cmd.Context())
				if err != nil {
					return err
				}
				return printSummary(cmd.OutOrStdout(), sum)
			},
		},
		&cobra.Command{
			Use:   "create LAPTOP_ID QUANTITY",
			Short: "Order a laptop",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				qty, err := strconv.Atoi(args[1])
				if err != nil || qty <= 0 {
					return fmt.Errorf("quantity must be a positive integer, got %q", args[1])
				}
				o, err := newClient().CreateOrder(cmd.Context(), args[0], qty)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "order %s placed: %d x %s\n", o.ID, o.Quantity, o.LaptopID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Cancel one of your orders",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := newClient().DeleteOrder(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted order %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
