// Package cpu detects the processor features used to pick block kernels.
//
// Detection runs once on first use and is cached. Tests can pin a feature
// set with SetForcedFeatures to exercise a specific kernel path.
package cpu

import (
	"strings"
	"sync"
)

// SIMDLevel names the instruction set a kernel requires.
type SIMDLevel int

const (
	// SIMDNone requires nothing beyond the Go compiler's baseline.
	SIMDNone SIMDLevel = iota

	// SIMDSSE2 is the amd64 baseline vector extension.
	SIMDSSE2

	// SIMDAVX2 is 256-bit AVX2 on amd64.
	SIMDAVX2

	// SIMDNEON is ARM Advanced SIMD, mandatory on arm64.
	SIMDNEON

	simdLevelCount
)

var simdLevelNames = [simdLevelCount]string{"none", "sse2", "avx2", "neon"}

// String returns the lower-case name of the level.
func (s SIMDLevel) String() string {
	if s >= 0 && s < simdLevelCount {
		return simdLevelNames[s]
	}
	return "unknown"
}

// Features describes the CPU capabilities relevant to kernel selection.
type Features struct {
	HasSSE2 bool
	HasAVX2 bool
	HasNEON bool

	// ForceGeneric restricts selection to SIMDNone kernels.
	ForceGeneric bool

	Architecture string // runtime.GOARCH
}

// String lists the detected extensions, e.g. "amd64 [sse2 avx2]".
func (f Features) String() string {
	var exts []string
	if f.HasSSE2 {
		exts = append(exts, SIMDSSE2.String())
	}
	if f.HasAVX2 {
		exts = append(exts, SIMDAVX2.String())
	}
	if f.HasNEON {
		exts = append(exts, SIMDNEON.String())
	}
	if f.ForceGeneric {
		exts = append(exts, "force-generic")
	}
	return f.Architecture + " [" + strings.Join(exts, " ") + "]"
}

var (
	detected    Features
	detectOnce  sync.Once
	detectMutex sync.Mutex

	forced      *Features
	forcedMutex sync.RWMutex
)

// DetectFeatures returns the features of the running CPU, or the forced set
// if one is installed.
func DetectFeatures() Features {
	forcedMutex.RLock()
	f := forced
	forcedMutex.RUnlock()

	if f != nil {
		return *f
	}

	detectMutex.Lock()
	detectOnce.Do(func() {
		detected = detect()
	})
	features := detected
	detectMutex.Unlock()

	return features
}

// SetForcedFeatures overrides detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forcedMutex.Lock()
	defer forcedMutex.Unlock()
	pinned := f
	forced = &pinned
}

// ResetDetection drops any forced features and the detection cache.
func ResetDetection() {
	forcedMutex.Lock()
	forced = nil
	forcedMutex.Unlock()

	detectMutex.Lock()
	detectOnce = sync.Once{}
	detected = Features{}
	detectMutex.Unlock()
}

// Supports reports whether a kernel requiring level can run with features.
func Supports(features Features, level SIMDLevel) bool {
	if features.ForceGeneric {
		return level == SIMDNone
	}

	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return features.HasSSE2
	case SIMDAVX2:
		return features.HasAVX2
	case SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}
