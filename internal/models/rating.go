package models

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^\s*([0-9]+(?:[.,][0-9]+)?)`)

// RatingValue extracts the leading number of a rating label, e.g. "4.5 stars" -> 4.5.
func RatingValue(label string) (float64, bool) {
	m := leadingNumber.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Match applies every filter bound to the laptop.
func (f LaptopFilter) Match(l Laptop) bool {
	if f.Brand != "" && !strings.Contains(strings.ToLower(l.Brand), strings.ToLower(f.Brand)) {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.MinRating != nil {
		v, ok := RatingValue(l.Rating)
		if !ok || v < *f.MinRating {
			return false
		}
	}
	return true
}
