package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/closetcompare/backend/internal/domain"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type printer interface {
	Print(w io.Writer, v any) error
}

func newPrinter(format string) (printer, error) {
	switch strings.ToLower(format) {
	case formatText, "":
		return textPrinter{}, nil
	case formatJSON:
		return jsonPrinter{}, nil
	case formatYAML:
		return yamlPrinter{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidRequest, format)
	}
}

type jsonPrinter struct{}

func (jsonPrinter) Print(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type yamlPrinter struct{}

func (yamlPrinter) Print(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

type textPrinter struct{}

func (textPrinter) Print(w io.Writer, v any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	switch v := v.(type) {
	case *domain.SizeChart:
		fmt.Fprintf(tw, "%s %s\n", v.Gender, v.GarmentClass)
		if len(v.Rows) == 0 {
			fmt.Fprintln(tw, "(no sizes charted)")
			break
		}
		fmt.Fprintln(tw, "US\tUK\tEU")
		for _, row := range v.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", row.US, row.UK, row.EU)
		}
	case *domain.ConvertResult:
		switch {
		case !v.Matched:
			fmt.Fprintf(tw, "no %s %s size %q in %s\n", v.Gender, v.GarmentClass, v.Size, v.From)
		case v.To != "":
			fmt.Fprintf(tw, "%s %s = %s %s\n", v.From, v.Size, v.To, v.Converted)
		default:
			fmt.Fprintf(tw, "US %s\tUK %s\tEU %s\n", v.Row.US, v.Row.UK, v.Row.EU)
		}
	case *domain.LetterResult:
		if v.Matched {
			fmt.Fprintf(tw, "%s = %s\n", v.Numeric, v.Letter)
		} else {
			fmt.Fprintf(tw, "no letter size for %q\n", v.Numeric)
		}
	case *domain.SyncReport:
		fmt.Fprintln(tw, "RETAILER\tIMPORTED\tSKIPPED")
		for _, r := range v.Retailers {
			fmt.Fprintf(tw, "%s\t%d\t%d\n", r.Retailer, r.Imported, r.Skipped)
		}
		fmt.Fprintf(tw, "total\t%d\t%d\n", v.Imported, v.Skipped)
	case []domain.ScoredItem:
		fmt.Fprintln(tw, "SCORE\tID\tBRAND\tCLASS\tPRICE")
		for _, s := range v {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\n", s.Score, s.Item.ID, s.Item.Brand, s.Item.GarmentClass, s.Item.Price)
		}
	default:
		fmt.Fprintf(tw, "%v\n", v)
	}

	return tw.Flush()
}
