//go:build linux

package native

import "golang.org/x/sys/unix"

// ThreadID is the OS thread id of the calling goroutine's thread.
func ThreadID() int {
	return unix.Gettid()
}
