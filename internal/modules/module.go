package modules

import (
	"github.com/funvibe/ollang/internal/ast"
)

// Module is one parsed source file. The program is shared by every
// import of the same resolved path and is never mutated after parsing.
type Module struct {
	Name    string
	Path    string // absolute, resolved path; the cache key
	Dir     string
	Program *ast.Program
}
