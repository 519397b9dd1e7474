package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/chuawjk/ecda/internal/forecast"
	"github.com/chuawjk/ecda/internal/state"
)

// renderGapTable writes the gap series as a table. Failed subzones get
// a single "no data" row. A nonzero year filters to that year.
func renderGapTable(w io.Writer, res *forecast.Result, year int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Subzone", "Year", "Demand", "Capacity", "Surplus", "Centres Needed"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Demand", Align: text.AlignRight},
		{Name: "Capacity", Align: text.AlignRight},
		{Name: "Surplus", Align: text.AlignRight},
		{Name: "Centres Needed", Align: text.AlignRight},
	})

	failed := make(map[string]string)
	for _, o := range res.Manifest {
		if o.Status == forecast.SubzoneFailed {
			failed[o.Subzone] = o.Error
		}
	}

	for _, g := range res.Gaps {
		if year != 0 && g.Year != year {
			continue
		}
		t.AppendRow(table.Row{
			g.Subzone, g.Year,
			fmt.Sprintf("%.1f", g.Demand),
			fmt.Sprintf("%.0f", g.Capacity),
			fmt.Sprintf("%+.1f", g.Surplus),
			g.CentresNeeded,
		})
	}
	for _, o := range res.Manifest {
		if _, ok := failed[o.Subzone]; ok {
			t.AppendRow(table.Row{o.Subzone, "-", "no data", "no data", "no data", "-"})
		}
	}

	t.SetStyle(table.StyleLight)
	t.Render()

	if len(failed) > 0 {
		fmt.Fprintf(w, "\n%d subzone(s) could not be projected:\n", len(failed))
		for _, o := range res.Manifest {
			if msg, ok := failed[o.Subzone]; ok {
				fmt.Fprintf(w, "  %s: %s\n", o.Subzone, msg)
			}
		}
	}
}

// renderResultJSON writes the full result as a single JSON document.
func renderResultJSON(w io.Writer, res *forecast.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// renderCapacityTable writes per-subzone capacity for the given years.
func renderCapacityTable(w io.Writer, ledger *forecast.CapacityLedger, years []int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{"Subzone", "Centres"}
	for _, y := range years {
		header = append(header, y)
	}
	t.AppendHeader(header)

	for _, sz := range ledger.Subzones() {
		row := table.Row{sz, ledger.Centres(sz)}
		for _, y := range years {
			row = append(row, ledger.CapacityAt(sz, y))
		}
		t.AppendRow(row)
	}

	t.SetStyle(table.StyleLight)
	t.Render()
}

// renderRunsTable writes the run history, newest first.
func renderRunsTable(w io.Writer, runs []*state.Run) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Status", "Reference", "Horizon", "Started", "Completed"})

	for _, r := range runs {
		completed := "-"
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format("2006-01-02 15:04:05")
		}
		t.AppendRow(table.Row{
			r.ID, r.Status, r.ReferenceYear, r.HorizonYear,
			r.StartedAt.Format("2006-01-02 15:04:05"), completed,
		})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
}
