// Package output provides utilities for formatting and displaying ROI results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/roi-forecast/internal/calculator"
	"github.com/iwvelando/roi-forecast/internal/presenter"
	"github.com/iwvelando/roi-forecast/pkg/format"
)

// Row is one formatted metric.
type Row struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Applicable bool    `json:"applicable"`
	Text       string  `json:"text"`
}

// Figure renders a figure according to the metric kind.
func Figure(kind calculator.Kind, fig calculator.Figure) string {
	var render func(float64) string
	switch kind {
	case calculator.KindHours:
		render = format.Hours
	case calculator.KindCurrency:
		render = format.Currency
	case calculator.KindPercent:
		render = format.Percent
	case calculator.KindMonths:
		render = format.Months
	default:
		render = func(v float64) string { return format.Count(v, 1) }
	}
	return format.Optional(fig.Value, fig.Applicable, render)
}

// Rows formats every metric of frame in display order.
func Rows(frame presenter.Frame) []Row {
	descriptors := calculator.Metrics()
	rows := make([]Row, 0, len(descriptors))
	for _, d := range descriptors {
		fig := frame.Figure(d.Metric)
		rows = append(rows, Row{
			Key:        d.Key,
			Label:      d.Label,
			Value:      fig.Value,
			Applicable: fig.Applicable,
			Text:       Figure(d.Kind, fig),
		})
	}
	return rows
}

// ResultRows formats a final (non-animated) result.
func ResultRows(r calculator.Result) []Row {
	return Rows(presenter.FrameOf(r))
}

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, title string, r calculator.Result) error {
	rows := ResultRows(r)
	width := 0
	for _, row := range rows {
		width = max(width, len(row.Label))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "--- Results for %s ---\n", title)
	for _, row := range rows {
		fmt.Fprintf(&b, "%-*s | %s\n", width, row.Label, row.Text)
	}
	if len(r.TaskSavings) > 0 {
		fmt.Fprintf(&b, "\nWeekly hours saved by task\n")
		for _, t := range r.TaskSavings {
			fmt.Fprintf(&b, "  %-*s | %s\n", width-2, t.Name, format.Hours(t.WeeklyHours))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// CsvFormat writes one metric per line with raw and formatted values.
func CsvFormat(w io.Writer, r calculator.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"metric", "label", "value", "display"}); err != nil {
		return err
	}
	for _, row := range ResultRows(r) {
		value := ""
		if row.Applicable {
			value = fmt.Sprintf("%.6f", row.Value)
		}
		if err := cw.Write([]string{row.Key, row.Label, value, row.Text}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Report is the machine-readable form of one computation.
type Report struct {
	Title  string            `json:"title"`
	Result calculator.Result `json:"result"`
	Rows   []Row             `json:"rows"`
}

// JSONFormat writes the result and its formatted rows as indented JSON.
func JSONFormat(w io.Writer, title string, r calculator.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Report{Title: title, Result: r, Rows: ResultRows(r)})
}
