package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/Skotchmaster/laptop_store/internal/client"
	"github.com/Skotchmaster/laptop_store/internal/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func printLaptops(w io.Writer, items []models.Laptop) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tBRAND\tCPU\tRAM\tSSD\tHDD\tOS\tPRICE\tRATING")
	for _, l := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%dGB %s\t%d\t%d\t%s\t%s\t%s\n",
			l.ID, l.Brand, l.ProcessorBrand, l.ProcessorName, l.RAMGB, l.RAMType,
			l.SSD, l.HDD, l.OS, formatPrice(l.Price), l.Rating)
	}
	return tw.Flush()
}

func printLaptop(w io.Writer, l *models.Laptop) error {
	tw := newTable(w)
	for _, row := range [][2]string{
		{"id", l.ID},
		{"brand", l.Brand},
		{"processor", l.ProcessorBrand + " " + l.ProcessorName},
		{"ram", fmt.Sprintf("%dGB %s", l.RAMGB, l.RAMType)},
		{"ssd", strconv.Itoa(l.SSD)},
		{"hdd", strconv.Itoa(l.HDD)},
		{"os", l.OS},
		{"price", formatPrice(l.Price)},
		{"rating", l.Rating},
		{"image_url", l.ImageURL},
	} {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

func printSummary(w io.Writer, sum client.OrderSummary) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ORDER\tLAPTOP\tBRAND\tQTY\tPRICE\tSUBTOTAL")
	for _, line := range sum.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			line.Order.ID, line.Laptop.ID, line.Laptop.Brand, line.Order.Quantity,
			formatPrice(line.Laptop.Price), line.Subtotal.StringFixed(2))
	}
	for _, o := range sum.Dangling {
		fmt.Fprintf(tw, "%s\t%s\t(deleted)\t%d\t-\t-\n", o.ID, o.LaptopID, o.Quantity)
	}
	fmt.Fprintf(tw, "\t\t\t\tTOTAL\t%s\n", sum.Total.StringFixed(2))
	return tw.Flush()
}
