//go:build linux

package platform

import "golang.org/x/sys/unix"

// Nanosleep suspends the calling thread for ns nanoseconds, resuming the
// remainder after signal interruptions.
func Nanosleep(ns int64) {
	if ns <= 0 {
		return
	}
	ts := unix.NsecToTimespec(ns)
	for {
		if err := unix.Nanosleep(&ts, &ts); err != unix.EINTR {
			return
		}
	}
}
