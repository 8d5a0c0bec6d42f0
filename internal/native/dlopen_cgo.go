//go:build cgo

package native

/*
#include <stdint.h>

typedef uint64_t (*ol_fn6)(uint64_t, uint64_t, uint64_t, uint64_t, uint64_t, uint64_t);

static uint64_t ol_call6(void *f, uint64_t a0, uint64_t a1, uint64_t a2,
                         uint64_t a3, uint64_t a4, uint64_t a5) {
	return ((ol_fn6)f)(a0, a1, a2, a3, a4, a5);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/coreos/pkg/dlopen"
)

// MaxArgs is how many words the trampoline passes.
const MaxArgs = 6

type dlLibrary struct {
	handle *dlopen.LibHandle
}

func openLibrary(path string) (library, error) {
	h, err := dlopen.GetHandle([]string{path})
	if err != nil {
		return nil, err
	}
	return &dlLibrary{handle: h}, nil
}

func (l *dlLibrary) symbol(name string) (Func, error) {
	sym, err := l.handle.GetSymbolPointer(name)
	if err != nil {
		return nil, err
	}
	return func(args []uint64) (uint64, error) {
		if len(args) > MaxArgs {
			return 0, fmt.Errorf("too many arguments: %d (max %d)", len(args), MaxArgs)
		}
		var a [MaxArgs]C.uint64_t
		for i, v := range args {
			a[i] = C.uint64_t(v)
		}
		ret := C.ol_call6(unsafe.Pointer(sym), a[0], a[1], a[2], a[3], a[4], a[5])
		return uint64(ret), nil
	}, nil
}

func (l *dlLibrary) close() error {
	return l.handle.Close()
}
