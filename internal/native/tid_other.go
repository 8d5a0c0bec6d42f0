//go:build !linux

package native

import "os"

// ThreadID falls back to the process id where threads have no portable id.
func ThreadID() int {
	return os.Getpid()
}
