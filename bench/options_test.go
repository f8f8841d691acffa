package bench

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.strategy != StrategyPlain {
		t.Errorf("default strategy = %v, want plain", cfg.strategy)
	}
	if cfg.layout != LayoutContiguous {
		t.Errorf("default layout = %v, want contiguous", cfg.layout)
	}
	if cfg.allocMode != AllocUntimed {
		t.Errorf("default allocMode = %v, want untimed", cfg.allocMode)
	}
	if cfg.maxBytes != defaultMaxBytes {
		t.Errorf("default maxBytes = %d", cfg.maxBytes)
	}
	if cfg.capture || cfg.allowNonFinite || cfg.sink != nil {
		t.Error("unexpected non-zero defaults")
	}
}

func TestOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"invalid strategy", WithStrategy(Strategy(9))},
		{"negative strategy", WithStrategy(Strategy(-1))},
		{"invalid layout", WithLayout(Layout(9))},
		{"invalid alloc mode", WithAllocMode(AllocMode(9))},
		{"zero max bytes", WithMaxBytes(0)},
		{"negative max bytes", WithMaxBytes(-5)},
		{"nil sink", WithSink(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			if err := tt.opt(&cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEffectiveLayout(t *testing.T) {
	cfg := defaultConfig()
	cfg.layout = LayoutBoxed
	if cfg.effectiveLayout() != LayoutBoxed {
		t.Error("plain strategy should keep boxed layout")
	}
	cfg.strategy = StrategyAccelerated
	if cfg.effectiveLayout() != LayoutContiguous {
		t.Error("accelerated strategy should use contiguous layout")
	}
}

func TestRequiredBytes(t *testing.T) {
	if got, ok := requiredBytes(10, LayoutContiguous); !ok || got != 160 {
		t.Errorf("contiguous = %d, %v; want 160", got, ok)
	}
	if got, ok := requiredBytes(10, LayoutBoxed); !ok || got != 480 {
		t.Errorf("boxed = %d, %v; want 480", got, ok)
	}
	if _, ok := requiredBytes(1<<62, LayoutBoxed); ok {
		t.Error("expected overflow")
	}
}

func TestParseAndString(t *testing.T) {
	strategies := map[string]Strategy{"plain": StrategyPlain, "": StrategyPlain, "JIT": StrategyAccelerated, "accelerated": StrategyAccelerated}
	for in, want := range strategies {
		got, err := ParseStrategy(in)
		if err != nil || got != want {
			t.Errorf("ParseStrategy(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	layouts := map[string]Layout{"contiguous": LayoutContiguous, "array": LayoutContiguous, "boxed": LayoutBoxed, "list": LayoutBoxed}
	for in, want := range layouts {
		got, err := ParseLayout(in)
		if err != nil || got != want {
			t.Errorf("ParseLayout(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	modes := map[string]AllocMode{"untimed": AllocUntimed, " timed ": AllocTimed}
	for in, want := range modes {
		got, err := ParseAllocMode(in)
		if err != nil || got != want {
			t.Errorf("ParseAllocMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseStrategy("gpu"); err == nil {
		t.Error("ParseStrategy(gpu) should fail")
	}
	if _, err := ParseLayout("tree"); err == nil {
		t.Error("ParseLayout(tree) should fail")
	}
	if _, err := ParseAllocMode("sometimes"); err == nil {
		t.Error("ParseAllocMode(sometimes) should fail")
	}

	if StrategyAccelerated.String() != "accelerated" || LayoutBoxed.String() != "boxed" || AllocTimed.String() != "timed" {
		t.Error("unexpected String() output")
	}
	if Strategy(7).String() != "Strategy(7)" {
		t.Errorf("Strategy(7).String() = %q", Strategy(7).String())
	}
}

func TestModeTextRoundTrip(t *testing.T) {
	b, err := AllocTimed.MarshalText()
	if err != nil || string(b) != "timed" {
		t.Fatalf("MarshalText = %q, %v", b, err)
	}

	var s Strategy
	if err := s.UnmarshalText([]byte("jit")); err != nil || s != StrategyAccelerated {
		t.Errorf("UnmarshalText(jit) = %v, %v", s, err)
	}
	var l Layout
	if err := l.UnmarshalText([]byte("tree")); err == nil {
		t.Error("UnmarshalText(tree) should fail")
	}
	if _, err := Layout(5).MarshalText(); err == nil {
		t.Error("invalid layout marshalled")
	}
}
