package bench

import (
	"github.com/cwbudde/algo-bench/internal/kernel"
	"github.com/cwbudde/algo-bench/transform"
)

// job owns the two sequences of a single run.
type job interface {
	// alloc reserves both sequences and fills input[i] = i.
	alloc(size int)
	// exec is the timed transform loop.
	exec()
	// output returns a contiguous view for checks after the timer has
	// stopped.
	output() []float64
	// impl names the code path that ran exec.
	impl() string
}

func newJob(cfg config, t transform.Transform) job {
	if cfg.strategy == StrategyAccelerated {
		return &kernelJob{k: kernel.Compile(t)}
	}
	if cfg.layout == LayoutBoxed {
		return &boxedJob{fn: t.Fn}
	}
	return &contiguousJob{fn: t.Fn}
}

// implLoop names the plain per-element loop.
const implLoop = "loop"

type contiguousJob struct {
	fn      transform.Func
	in, out []float64
}

func (j *contiguousJob) alloc(size int) {
	j.in = make([]float64, size)
	for i := range j.in {
		j.in[i] = float64(i)
	}
	j.out = make([]float64, size)
}

func (j *contiguousJob) exec() {
	fn, in, out := j.fn, j.in, j.out
	for i := 0; i < len(in); i++ {
		out[i] = fn(in[i])
	}
}

func (j *contiguousJob) output() []float64 { return j.out }
func (j *contiguousJob) impl() string      { return implLoop }

type boxedJob struct {
	fn      transform.Func
	in, out []any
}

func (j *boxedJob) alloc(size int) {
	j.in = make([]any, size)
	for i := range j.in {
		j.in[i] = float64(i)
	}
	j.out = make([]any, size)
}

func (j *boxedJob) exec() {
	fn, in, out := j.fn, j.in, j.out
	for i := 0; i < len(in); i++ {
		out[i] = fn(in[i].(float64))
	}
}

func (j *boxedJob) output() []float64 { return unbox(j.out) }
func (j *boxedJob) impl() string      { return implLoop }

func unbox(xs []any) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i], _ = v.(float64)
	}
	return out
}

type kernelJob struct {
	k       kernel.Kernel
	in, out []float64
}

func (j *kernelJob) alloc(size int) {
	j.in = make([]float64, size)
	for i := range j.in {
		j.in[i] = float64(i)
	}
	j.out = make([]float64, size)
}

func (j *kernelJob) exec() {
	j.k.Apply(j.out, j.in)
}

func (j *kernelJob) output() []float64 { return j.out }
func (j *kernelJob) impl() string      { return j.k.Impl }
