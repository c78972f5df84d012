package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Column names of the goodreads export the loader consumes. Extra columns
// in the file are ignored.
const (
	colBookID        = "book_id"
	colTitle         = "book_title"
	colAuthor        = "author"
	colGenres        = "genres"
	colNumRatings    = "num_ratings"
	colNumReviews    = "num_reviews"
	colAverageRating = "average_rating"
	colNumPages      = "num_pages"
)

// LoadCSV reads raw book records from a goodreads-style CSV export.
// Genre and page cells hold Python-list literals and are parsed
// accordingly; cells that fail to parse yield an empty genre list or a
// missing page count rather than an error. Rows with a malformed id are
// skipped.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	return readRecords(f)
}

func readRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colBookID, colTitle, colAuthor, colAverageRating} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog csv missing column %q", required)
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		id, err := strconv.ParseInt(field(colBookID), 10, 64)
		if err != nil {
			continue
		}

		records = append(records, Record{
			ID:            id,
			Title:         field(colTitle),
			Author:        field(colAuthor),
			Genres:        parseGenres(field(colGenres)),
			NumRatings:    parseInt(field(colNumRatings)),
			NumReviews:    parseInt(field(colNumReviews)),
			AverageRating: parseFloat(field(colAverageRating)),
			NumPages:      parsePages(field(colNumPages)),
		})
	}
	return records, nil
}

func parseInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseGenres parses a Python-list literal like "['Fantasy', 'Fiction']"
// into its string elements. Anything unparseable yields nil.
func parseGenres(s string) []string {
	return parseListLiteral(s)
}

// parsePages extracts the first element of a list literal like "['374']"
// as a page count. Missing or unparseable cells yield NaN for later
// median imputation.
func parsePages(s string) float64 {
	items := parseListLiteral(s)
	if len(items) == 0 {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(items[0], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseListLiteral reads a flat Python list literal of quoted strings,
// preserving element order. Returns nil for anything that is not a
// well-formed list.
func parseListLiteral(s string) []string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil
	}
	inner := s[1 : len(s)-1]

	var items []string
	i := 0
	for i < len(inner) {
		switch inner[i] {
		case '\'', '"':
			quote := inner[i]
			end := i + 1
			for end < len(inner) && inner[end] != quote {
				end++
			}
			if end >= len(inner) {
				return nil
			}
			items = append(items, inner[i+1:end])
			i = end + 1
		default:
			i++
		}
	}
	return items
}
