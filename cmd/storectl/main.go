package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/laptop_store/internal/client"
)

type options struct {
	url      string
	user     string
	password string
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Command-line client for the laptop store API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.url, "url", envOr("STORE_API_URL", "http://localhost:8080"), "API base URL")
	root.PersistentFlags().StringVarP(&opts.user, "user", "u", os.Getenv("STORE_USER"), "username")
	root.PersistentFlags().StringVarP(&opts.password, "password", "p", os.Getenv("STORE_PASSWORD"), "password")

	newClient := func() *client.Client {
		return client.NewClient(opts.url, opts.user, opts.password)
	}

	root.AddCommand(
		newRegisterCmd(newClient, opts),
		newLoginCmd(newClient),
		newLaptopsCmd(newClient),
		newOrdersCmd(newClient),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
