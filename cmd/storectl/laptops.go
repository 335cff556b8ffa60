package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/laptop_store/internal/client"
	"github.com/Skotchmaster/laptop_store/internal/csvimport"
	"github.com/Skotchmaster/laptop_store/internal/models"
	"github.com/Skotchmaster/laptop_store/internal/transport"
)

func newLaptopsCmd(newClient func() *client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "laptops",
		Aliases: []string{"laptop"},
		Short:   "Browse and manage the laptop catalog",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every laptop",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				items, err := newClient().ListLaptops(cmd.Context())
				if err != nil {
					return err
				}
				return printLaptops(cmd.OutOrStdout(), items)
			},
		},
		&cobra.Command{
			Use:   "get ID",
			Short: "Show one laptop",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				l, err := newClient().GetLaptop(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printLaptop(cmd.OutOrStdout(), l)
			},
		},
		newLaptopAddCmd(newClient),
		&cobra.Command{
			Use:   "set-price ID PRICE",
			Short: "Change the price of a laptop",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				price, err := strconv.ParseFloat(args[1], 64)
				if err != nil || price < 0 {
					return fmt.Errorf("invalid price %q", args[1])
				}
				l, err := newClient().SetPrice(cmd.Context(), args[0], price)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "price of %s set to %s\n", l.ID, formatPrice(l.Price))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Remove a laptop from the catalog",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := newClient().DeleteLaptop(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "import FILE",
			Short: "Bulk import laptops from a CSV or JSON file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := readImportFile(args[0])
				if err != nil {
					return err
				}
				n, err := newClient().ImportLaptops(cmd.Context(), items)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d laptops\n", n)
				return nil
			},
		},
		newLaptopSearchCmd(newClient),
		&cobra.Command{
			Use:   "set-image ID FILE",
			Short: "Upload a picture for a laptop",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()

				l, err := newClient().SetLaptopImage(cmd.Context(), args[0], args[1], f)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "image of %s: %s\n", l.ID, l.ImageURL)
				return nil
			},
		},
	)
	return cmd
}

func newLaptopAddCmd(newClient func() *client.Client) *cobra.Command {
	var l models.Laptop
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a laptop to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := newClient().CreateLaptop(cmd.Context(), l)
			if err != nil {
				return err
			}
			return printLaptop(cmd.OutOrStdout(), created)
		},
	}

	f := cmd.Flags()
	f.StringVar(&l.Brand, "brand", "", "brand")
	f.StringVar(&l.ProcessorBrand, "processor-brand", "", "processor brand")
	f.StringVar(&l.ProcessorName, "processor-name", "", "processor name")
	f.IntVar(&l.RAMGB, "ram", 0, "RAM in GB")
	f.StringVar(&l.RAMType, "ram-type", "", "RAM type")
	f.IntVar(&l.SSD, "ssd", 0, "SSD size in GB")
	f.IntVar(&l.HDD, "hdd", 0, "HDD size in GB")
	f.StringVar(&l.OS, "os", "", "operating system")
	f.Float64Var(&l.Price, "price", 0, "price")
	f.StringVar(&l.Rating, "rating", "", "rating label")
	f.StringVar(&l.ImageURL, "image-url", "", "image URL")
	for _, name := range []string{"brand", "processor-brand", "processor-name", "ram", "ram-type", "os", "price", "rating"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newLaptopSearchCmd(newClient func() *client.Client) *cobra.Command {
	var (
		filter                        models.LaptopFilter
		minPrice, maxPrice, minRating float64
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search laptops by brand, price range and rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("min-price") {
				filter.MinPrice = &minPrice
			}
			if flags.Changed("max-price") {
				filter.MaxPrice = &maxPrice
			}
			if flags.Changed("min-rating") {
				filter.MinRating = &minRating
			}
			items, err := newClient().SearchLaptops(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printLaptops(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().StringVar(&filter.Brand, "brand", "", "brand substring, case-insensitive")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "lowest price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "highest price")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "lowest rating")
	return cmd
}

// readImportFile parses the whole file up front so a bad row is reported
// before anything is sent.
func readImportFile(name string) ([]models.Laptop, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(name), ".json") {
		return decodeJSONLaptops(f)
	}
	return csvimport.Parse(f)
}

func decodeJSONLaptops(r io.Reader) ([]models.Laptop, error) {
	var reqs []transport.LaptopRequest
	if err := json.NewDecoder(r).Decode(&reqs); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	items := make([]models.Laptop, 0, len(reqs))
	for i, req := range reqs {
		l, err := req.ToModel()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		items = append(items, l)
	}
	return items, nil
}
