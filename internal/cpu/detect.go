package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// detect reads the host's vector extensions. x/sys/cpu leaves the flags of
// other architectures false, so one switch covers every GOARCH.
func detect() Features {
	f := Features{Architecture: runtime.GOARCH}

	switch runtime.GOARCH {
	case "amd64":
		f.HasSSE2 = cpu.X86.HasSSE2
		f.HasAVX2 = cpu.X86.HasAVX2
	case "arm64":
		f.HasNEON = cpu.ARM64.HasASIMD
	}

	return f
}
