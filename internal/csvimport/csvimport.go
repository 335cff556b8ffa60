package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Skotchmaster/laptop_store/internal/models"
)

var RequiredColumns = []string{
	"brand", "processor_brand", "processor_name", "ram_gb", "ram_type",
	"ssd", "hdd", "os", "price", "rating",
}

var ErrMissingColumns = errors.New("csv: missing required columns")

// Parse reads a header row followed by one laptop per row. Extra columns are
// ignored; image_url is optional.
func Parse(r io.Reader) ([]models.Laptop, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrMissingColumns)
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var items []models.Laptop
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		row := rowReader{rec: rec, col: col, line: line}
		l := models.Laptop{
			Brand:          row.str("brand"),
			ProcessorBrand: row.str("processor_brand"),
			ProcessorName:  row.str("processor_name"),
			RAMGB:          row.number("ram_gb"),
			RAMType:        row.str("ram_type"),
			SSD:            row.number("ssd"),
			HDD:            row.number("hdd"),
			OS:             row.str("os"),
			Price:          row.decimal("price"),
			Rating:         row.str("rating"),
			ImageURL:       row.str("image_url"),
		}
		if row.err != nil {
			return nil, row.err
		}
		items = append(items, l)
	}
	return items, nil
}

type rowReader struct {
	rec  []string
	col  map[string]int
	line int
	err  error
}

func (r *rowReader) str(name string) string {
	i, ok := r.col[name]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r *rowReader) number(name string) int {
	v, err := strconv.Atoi(r.str(name))
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("csv line %d: %s: %w", r.line, name, err)
	}
	return v
}

func (r *rowReader) decimal(name string) float64 {
	v, err := strconv.ParseFloat(r.str(name), 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = fmt.Errorf("%q is not a finite number", r.str(name))
	}
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("csv line %d: %s: %w", r.line, name, err)
	}
	return v
}
