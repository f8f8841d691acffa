package report

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-bench/internal/kernel"
	"github.com/cwbudde/algo-bench/suite"
	"github.com/cwbudde/algo-bench/transform"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// table aligns rows with tabwriter and styles the header line afterwards,
// so escape sequences do not disturb the column widths.
type table struct {
	buf bytes.Buffer
	tw  *tabwriter.Writer
}

func newTable(header ...string) *table {
	t := &table{}
	t.tw = tabwriter.NewWriter(&t.buf, 0, 0, 2, ' ', 0)
	t.row(header...)
	return t
}

func (t *table) row(cols ...string) {
	fmt.Fprintln(t.tw, strings.Join(cols, "\t"))
}

func (t *table) writeTo(w io.Writer) error {
	if err := t.tw.Flush(); err != nil {
		return err
	}
	header, rest, _ := strings.Cut(t.buf.String(), "\n")
	_, err := fmt.Fprintf(w, "%s\n%s", headerStyle.Render(strings.TrimRight(header, " ")), rest)
	return err
}

func writeTable(w io.Writer, rep suite.Report) error {
	t := newTable("CASE", "TRANSFORM", "SIZE", "STRATEGY", "LAYOUT", "ALLOC", "IMPL", "MEDIAN(s)", "MIN(s)", "CV", "PERIOD")
	for _, cr := range rep.Cases {
		c := cr.Case
		period := "-"
		if p := cr.Periodicity; p != nil && p.Periodic(0.5) {
			period = fmt.Sprintf("%.1f", p.Period)
		}
		t.row(c.Name, c.Transform, fmt.Sprint(c.Size), c.Strategy.String(), c.Layout.String(), c.AllocMode.String(),
			cr.Impl, FormatSeconds(cr.Summary.Median), FormatSeconds(cr.Summary.Min), fmt.Sprintf("%.3f", cr.Summary.CV), period)
	}
	if err := t.writeTo(w); err != nil {
		return err
	}

	for _, c := range rep.Comparisons {
		if _, err := fmt.Fprintln(w, noteStyle.Render(c.String())); err != nil {
			return err
		}
	}
	if rep.Features != "" {
		if _, err := fmt.Fprintln(w, noteStyle.Render("cpu: "+rep.Features)); err != nil {
			return err
		}
	}
	return nil
}

// WriteKernels renders the kernel registry as seen from the running CPU.
func WriteKernels(w io.Writer, info kernel.Info) error {
	if _, err := fmt.Fprintf(w, "cpu: %s\n", info.Features); err != nil {
		return err
	}
	best := info.Best
	if best == "" {
		best = "none"
	}
	if _, err := fmt.Fprintf(w, "best: %s\n\n", best); err != nil {
		return err
	}

	t := newTable("ENTRY", "LEVEL", "PRIORITY", "SUPPORTED", "OPS")
	for _, e := range info.Entries {
		t.row(e.Name, e.Level.String(), fmt.Sprint(e.Priority), fmt.Sprint(e.Supported), strings.Join(e.Ops, ","))
	}
	if err := t.writeTo(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	sel := newTable("OP", "SELECTED")
	for _, op := range slices.Sorted(maps.Keys(info.Selected)) {
		sel.row(op, info.Selected[op])
	}
	return sel.writeTo(w)
}

// WriteTransforms lists the transform catalog.
func WriteTransforms(w io.Writer, ts []transform.Transform) error {
	t := newTable("TRANSFORM", "KERNEL", "APPROXIMATE", "DESCRIPTION")
	for _, tr := range ts {
		k := tr.Kernel
		if k == "" {
			k = kernel.ImplUnrolled
		}
		t.row(tr.Name, k, fmt.Sprint(tr.Approximate), tr.Description)
	}
	return t.writeTo(w)
}
