package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/laptop_store/internal/client"
)

func newRegisterCmd(newClient func() *client.Client, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account using --user and --password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := newClient().Register(cmd.Context(), opts.user, opts.password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", opts.user)
			return nil
		},
	}
}

func newLoginCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check credentials and print the account role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, err := newClient().Login(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "login successful, role: %s\n", role)
			return nil
		},
	}
}
