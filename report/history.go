package report

import (
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/algo-bench/internal/store"
)

// WriteHistory renders stored runs, newest first, one row per case.
func WriteHistory(w io.Writer, runs []store.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, noteStyle.Render("no runs recorded"))
		return err
	}

	t := newTable("RUN", "STARTED", "CASE", "TRANSFORM", "SIZE", "STRATEGY", "IMPL", "REPS", "MEDIAN(s)")
	for _, r := range runs {
		started := r.Started.UTC().Format(time.RFC3339)
		for _, c := range r.Cases {
			t.row(fmt.Sprint(r.ID), started, c.Name, c.Transform, fmt.Sprint(c.Size), c.Strategy, c.Impl,
				fmt.Sprint(c.Repetitions), FormatSeconds(c.Median))
		}
	}
	return t.writeTo(w)
}
