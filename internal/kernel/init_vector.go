//go:build (amd64 || arm64) && !purego

package kernel

// Importing the arch packages runs their init() registrations.
import (
	_ "github.com/cwbudde/algo-bench/internal/kernel/arch/generic"
	_ "github.com/cwbudde/algo-bench/internal/kernel/arch/vector"
)
