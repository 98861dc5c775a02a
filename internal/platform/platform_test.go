package platform

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHasWideCAS(t *testing.T) {
	switch runtime.GOARCH {
	case "amd64", "arm64", "ppc64le", "s390x", "riscv64":
		assert.True(t, HasWideCAS(), "64-bit targets always have wide CAS")
	case "mips", "mipsle":
		assert.False(t, HasWideCAS())
	}
}

func TestNanosleep(t *testing.T) {
	start := time.Now()
	Nanosleep(int64(2 * time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Millisecond)

	// Non-positive durations return immediately
	start = time.Now()
	Nanosleep(0)
	Nanosleep(-5)
	assert.Less(t, time.Since(start), time.Second)
}
