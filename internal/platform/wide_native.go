//go:build !arm && !mips && !mipsle

package platform

// Every other port either has 64-bit registers or, on 386, CMPXCHG8B.
var hasWideCAS = true
