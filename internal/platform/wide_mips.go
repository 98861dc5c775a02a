//go:build mips || mipsle

package platform

// The runtime guards 64-bit atomics on mips32 with a spinlock.
var hasWideCAS = false
