// Package platform answers the two questions the version system asks of the
// machine it runs on: can a 64-bit word be compare-and-swapped natively, and
// how does a goroutine sleep for a short, fixed number of nanoseconds.
package platform

// HasWideCAS reports whether the target performs 64-bit compare-and-swap
// natively. When it does not, the Go runtime emulates 64-bit atomics with a
// lock and callers may prefer their own.
func HasWideCAS() bool {
	return hasWideCAS
}
