package suite

import (
	"log/slog"

	"github.com/cwbudde/algo-bench/bench"
	"github.com/cwbudde/algo-bench/internal/telemetry"
)

// Observer is notified of every measured run and every failed case.
type Observer interface {
	Observe(caseName string, res bench.Result)
	Failed(caseName string, err error)
}

// LogObserver writes one debug record per run and an error record per
// failure.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o LogObserver) Observe(caseName string, res bench.Result) {
	o.logger().Debug("run finished",
		"case", caseName,
		"transform", res.Transform,
		"size", res.Size,
		"strategy", res.Strategy.String(),
		"impl", res.Impl,
		"seconds", res.Seconds(),
	)
}

func (o LogObserver) Failed(caseName string, err error) {
	telemetry.LogError(o.logger(), "case failed", bench.Kind(err), err, "case", caseName)
}
