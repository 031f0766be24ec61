package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/magabrotheeeer/yayayum/internal/models"
	"github.com/magabrotheeeer/yayayum/internal/ranking"
)

// Форматы вывода.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

type printer struct {
	format string
	w      io.Writer
}

func newPrinter(format string, w io.Writer) (printer, error) {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return printer{format: format, w: w}, nil
	default:
		return printer{}, fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

func (p printer) print(v any) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return p.table(v)
	}
}

func (p printer) table(v any) error {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	row := func(cols ...any) {
		parts := make([]string, len(cols))
		for i, c := range cols {
			parts[i] = fmt.Sprint(c)
		}
		fmt.Fprintln(tw, strings.Join(parts, "\t"))
	}

	switch v := v.(type) {
	case []models.User:
		row("ID", "USERNAME")
		for _, u := range v {
			row(u.ID, u.Username)
		}
	case models.User:
		return p.table([]models.User{v})
	case []models.Dish:
		row("ID", "NR", "NAME", "PRICE", "CATEGORY", "DIET")
		for _, d := range v {
			row(d.ID, d.Nr, d.Name, d.PriceKr, d.Category, restrictions(d.DietaryRestrictions))
		}
	case models.Dish:
		return p.table([]models.Dish{v})
	case []models.Rating:
		row("ID", "DISH", "USER", "RATING", "DATE", "DESCRIPTION")
		for _, r := range v {
			row(r.ID, r.DishID, r.UserID, r.Rating, r.Date.Format("2006-01-02 15:04"), deref(r.Description))
		}
	case models.Rating:
		return p.table([]models.Rating{v})
	case []ranking.Entry:
		row("#", "NR", "NAME", "AVERAGE", "RATINGS")
		for i, e := range v {
			row(i+1, e.Dish.Nr, e.Dish.Name, fmt.Sprintf("%.2f", e.Average), e.Count)
		}
	case string:
		row(v)
	default:
		return fmt.Errorf("cannot print %T as table", v)
	}
	return tw.Flush()
}

func restrictions(rs []models.DietaryRestriction) string {
	if len(rs) == 0 {
		return "-"
	}
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
