//go:build !linux

package platform

import "time"

// Nanosleep suspends the calling goroutine for ns nanoseconds.
func Nanosleep(ns int64) {
	if ns <= 0 {
		return
	}
	time.Sleep(time.Duration(ns))
}
