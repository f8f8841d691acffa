package kernel

import (
	"github.com/cwbudde/algo-bench/internal/cpu"
	"github.com/cwbudde/algo-bench/internal/kernel/registry"
)

// EntryInfo summarises one registry entry for display.
type EntryInfo struct {
	Name      string
	Level     cpu.SIMDLevel
	Priority  int
	Ops       []string
	Supported bool
}

// Info describes the registry as seen from the running CPU.
type Info struct {
	Features cpu.Features
	Entries  []EntryInfo

	// Best is the highest-priority entry the CPU supports, "" if none.
	Best string

	// Selected maps each operation to the entry that will run it.
	Selected map[string]string
}

// Describe reports the registered entries and the current selection.
func Describe() Info {
	features := cpu.DetectFeatures()

	info := Info{
		Features: features,
		Selected: make(map[string]string),
	}

	for _, e := range registry.Global.ListEntries() {
		info.Entries = append(info.Entries, EntryInfo{
			Name:      e.Name,
			Level:     e.SIMDLevel,
			Priority:  e.Priority,
			Ops:       e.Ops(),
			Supported: cpu.Supports(features, e.SIMDLevel),
		})
	}

	if best := registry.Global.Best(features); best != nil {
		info.Best = best.Name
	}

	for op, k := range selection() {
		info.Selected[op] = k.Impl
	}

	return info
}
