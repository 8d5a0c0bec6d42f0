//go:build !cgo

package native

// MaxArgs is how many words a native call may take.
const MaxArgs = 6

func openLibrary(path string) (library, error) {
	return nil, ErrCgoRequired
}
