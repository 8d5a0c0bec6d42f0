package evaluator

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/funvibe/ollang/internal/ast"
)

const (
	arenaBase  = 0x10000
	arenaAlign = 16
)

type arenaSlot struct {
	buf        []byte
	base       uint64
	generation uint32
	live       bool
}

// Arena is the memory sandbox of one interpreter. Script addresses are
// synthetic: each allocation gets a fresh aligned range that is never
// handed out again, so a stale address can only miss.
type Arena struct {
	mu       sync.Mutex
	slots    []arenaSlot
	next     uint64
	used     int
	maxBytes int
	log      zerolog.Logger
}

func NewArena(maxBytes int, log zerolog.Logger) *Arena {
	return &Arena{next: arenaBase, maxBytes: maxBytes, log: log}
}

// MemoryHandle refers to a range inside one arena slot. Owning handles
// come from alloc and are released by free or, failing that, by the
// garbage collector. Borrowed handles come from ptr and cannot be freed.
type MemoryHandle struct {
	arena      *Arena
	slot       int
	generation uint32
	offset     uint64
	Size       int
	Owned      bool
}

func (h *MemoryHandle) Type() ObjectType { return POINTER_OBJ }
func (h *MemoryHandle) Inspect() string {
	return fmt.Sprintf("0x%x [%d bytes]", h.Address(), h.Size)
}

// Address is the sandbox address of the first byte.
func (h *MemoryHandle) Address() uint64 {
	h.arena.mu.Lock()
	defer h.arena.mu.Unlock()
	return h.arena.slots[h.slot].base + h.offset
}

func sandboxError(format string, a ...interface{}) *Error {
	return newError(MemorySandboxViolation, format, a...)
}

func alignUp(n uint64) uint64 {
	return (n + arenaAlign - 1) &^ (arenaAlign - 1)
}

// Alloc reserves size zeroed bytes.
func (a *Arena) Alloc(size int) (*MemoryHandle, *Error) {
	if size < 0 {
		return nil, sandboxError("Invalid allocation size: %d", size)
	}

	a.mu.Lock()
	if a.maxBytes > 0 && a.used+size > a.maxBytes {
		a.mu.Unlock()
		return nil, sandboxError("allocation of %d bytes exceeds sandbox limit of %d bytes", size, a.maxBytes)
	}
	base := a.next
	span := uint64(size)
	if span == 0 {
		span = 1
	}
	a.next = alignUp(base + span)
	a.slots = append(a.slots, arenaSlot{
		buf:        make([]byte, size),
		base:       base,
		generation: 1,
		live:       true,
	})
	slot := len(a.slots) - 1
	a.used += size
	a.mu.Unlock()

	h := &MemoryHandle{arena: a, slot: slot, generation: 1, Size: size, Owned: true}
	runtime.SetFinalizer(h, func(h *MemoryHandle) {
		h.arena.release(h.slot, h.generation)
	})
	a.log.Debug().Str("handle", fmt.Sprintf("0x%x", base)).Int("size", size).Msg("sandbox alloc")
	return h, nil
}

// Free releases the slot of an owning handle.
func (a *Arena) Free(h *MemoryHandle) *Error {
	if !h.Owned {
		return sandboxError("cannot free borrowed handle")
	}
	if !a.release(h.slot, h.generation) {
		return sandboxError("double free of memory handle")
	}
	runtime.SetFinalizer(h, nil)
	return nil
}

func (a *Arena) release(slot int, generation uint32) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := &a.slots[slot]
	if !s.live || s.generation != generation {
		return false
	}
	a.log.Debug().Str("handle", fmt.Sprintf("0x%x", s.base)).Int("size", len(s.buf)).Msg("sandbox free")
	a.used -= len(s.buf)
	s.live = false
	s.generation++
	s.buf = nil
	return true
}

// Used reports the number of live bytes.
func (a *Arena) Used() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used
}

// locate finds the live slot containing addr. Bases only grow, so the
// slots are sorted by address.
func (a *Arena) locate(addr uint64) (int, bool) {
	i := sort.Search(len(a.slots), func(i int) bool {
		return a.slots[i].base > addr
	}) - 1
	if i < 0 {
		return 0, false
	}
	s := a.slots[i]
	if !s.live || addr >= s.base+uint64(len(s.buf)) {
		return 0, false
	}
	return i, true
}

// Borrow returns a non-owning handle starting at addr.
func (a *Arena) Borrow(addr uint64) (*MemoryHandle, *Error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	slot, ok := a.locate(addr)
	if !ok {
		return nil, sandboxError("Invalid address: 0x%x", addr)
	}
	s := a.slots[slot]
	off := addr - s.base
	return &MemoryHandle{
		arena:      a,
		slot:       slot,
		generation: s.generation,
		offset:     off,
		Size:       len(s.buf) - int(off),
	}, nil
}

// view returns the bytes [off, off+n) of h. The caller holds a.mu.
func (a *Arena) view(h *MemoryHandle, off, n int) ([]byte, *Error) {
	s := a.slots[h.slot]
	if !s.live || s.generation != h.generation {
		return nil, sandboxError("use of freed memory handle")
	}
	if off < 0 || n < 0 || n > h.Size || off > h.Size-n {
		return nil, sandboxError("memory access out of bounds: offset %d, width %d, size %d", off, n, h.Size)
	}
	start := int(h.offset) + off
	return s.buf[start : start+n], nil
}

// addressView is view for a raw sandbox address.
func (a *Arena) addressView(addr uint64, n int) ([]byte, *Error) {
	slot, ok := a.locate(addr)
	if !ok {
		return nil, sandboxError("Invalid address: 0x%x", addr)
	}
	s := a.slots[slot]
	start := int(addr - s.base)
	if n < 0 || n > len(s.buf) || start > len(s.buf)-n {
		return nil, sandboxError("memory access out of bounds at 0x%x", addr)
	}
	return s.buf[start : start+n], nil
}

// ReadBytes copies n bytes at addr.
func (a *Arena) ReadBytes(addr uint64, n int) ([]byte, *Error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, err := a.addressView(addr, n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// WriteBytes copies data to addr.
func (a *Arena) WriteBytes(addr uint64, data []byte) *Error {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, err := a.addressView(addr, len(data))
	if err != nil {
		return err
	}
	copy(b, data)
	return nil
}

// Fill sets n bytes at addr to b.
func (a *Arena) Fill(addr uint64, n int, b byte) *Error {
	a.mu.Lock()
	defer a.mu.Unlock()
	view, err := a.addressView(addr, n)
	if err != nil {
		return err
	}
	for i := range view {
		view[i] = b
	}
	return nil
}

// CString reads a NUL-terminated string at addr, bounded by its slot.
func (a *Arena) CString(addr uint64) (string, *Error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	slot, ok := a.locate(addr)
	if !ok {
		return "", sandboxError("Invalid address: 0x%x", addr)
	}
	s := a.slots[slot]
	b := s.buf[addr-s.base:]
	for i, c := range b {
		if c == 0 {
			return string(b[:i]), nil
		}
	}
	return string(b), nil
}

var typeWidths = map[string]int{
	"i8": 1, "u8": 1,
	"i16": 2, "u16": 2,
	"i32": 4, "u32": 4, "f32": 4,
	"i64": 8, "u64": 8, "f64": 8,
}

// Read decodes one little-endian value of typ at off.
func (a *Arena) Read(h *MemoryHandle, off int, typ string) (float64, *Error) {
	width, ok := typeWidths[typ]
	if !ok {
		return 0, newError(TypeMismatch, "Invalid memory read: %s", typ)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	b, err := a.view(h, off, width)
	if err != nil {
		return 0, err
	}
	switch typ {
	case "i8":
		return float64(int8(b[0])), nil
	case "u8":
		return float64(b[0]), nil
	case "i16":
		return float64(int16(binary.LittleEndian.Uint16(b))), nil
	case "u16":
		return float64(binary.LittleEndian.Uint16(b)), nil
	case "i32":
		return float64(int32(binary.LittleEndian.Uint32(b))), nil
	case "u32":
		return float64(binary.LittleEndian.Uint32(b)), nil
	case "i64":
		return float64(int64(binary.LittleEndian.Uint64(b))), nil
	case "u64":
		return float64(binary.LittleEndian.Uint64(b)), nil
	case "f32":
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
	default:
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	}
}

// Write encodes v as typ at off. Integer types truncate.
func (a *Arena) Write(h *MemoryHandle, off int, v float64, typ string) *Error {
	width, ok := typeWidths[typ]
	if !ok {
		return newError(TypeMismatch, "Invalid memory write: %s", typ)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	b, err := a.view(h, off, width)
	if err != nil {
		return err
	}
	bits := uint64(toInt64(v))
	if typ == "u64" && v >= math.MaxInt64 {
		bits = uint64(v)
	}
	switch typ {
	case "i8", "u8":
		b[0] = byte(bits)
	case "i16", "u16":
		binary.LittleEndian.PutUint16(b, uint16(bits))
	case "i32", "u32":
		binary.LittleEndian.PutUint32(b, uint32(bits))
	case "i64", "u64":
		binary.LittleEndian.PutUint64(b, bits)
	case "f32":
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	case "f64":
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	}
	return nil
}

func (e *Evaluator) pointerArg(obj Object) (*MemoryHandle, *Error) {
	switch obj := obj.(type) {
	case *MemoryHandle:
		return obj, nil
	case *Number:
		return e.Arena.Borrow(uint64(toInt64(obj.Value)))
	}
	return nil, newError(TypeMismatch, "Expected a pointer, got %s", typeName(obj))
}

func (e *Evaluator) evalAllocExpression(node *ast.AllocExpression, env *Environment) Object {
	size := e.Eval(node.Size, env)
	if isError(size) {
		return size
	}
	n, ok := size.(*Number)
	if !ok {
		return newError(TypeMismatch, "alloc requires a number size")
	}
	h, err := e.Arena.Alloc(int(toInt64(n.Value)))
	if err != nil {
		return err
	}
	return h
}

func (e *Evaluator) evalFreeExpression(node *ast.FreeExpression, env *Environment) Object {
	val := e.Eval(node.Pointer, env)
	if isError(val) {
		return val
	}
	h, ok := val.(*MemoryHandle)
	if !ok {
		return newError(TypeMismatch, "free requires a pointer")
	}
	if err := e.Arena.Free(h); err != nil {
		return err
	}
	return NULL
}

func (e *Evaluator) evalReadExpression(node *ast.ReadExpression, env *Environment) Object {
	ptr := e.Eval(node.Pointer, env)
	if isError(ptr) {
		return ptr
	}
	offset := e.Eval(node.Offset, env)
	if isError(offset) {
		return offset
	}
	h, herr := e.pointerArg(ptr)
	if herr != nil {
		return herr
	}
	off, ok := offset.(*Number)
	if !ok {
		return newError(TypeMismatch, "Invalid memory read: offset must be a number")
	}
	v, err := e.Arena.Read(h, int(toInt64(off.Value)), node.TypeName)
	if err != nil {
		return err
	}
	return &Number{Value: v}
}

func (e *Evaluator) evalWriteExpression(node *ast.WriteExpression, env *Environment) Object {
	values := e.evalExpressions([]ast.Expression{node.Pointer, node.Offset, node.Value}, env)
	if len(values) == 1 && isError(values[0]) {
		return values[0]
	}
	h, herr := e.pointerArg(values[0])
	if herr != nil {
		return herr
	}
	off, ok := values[1].(*Number)
	if !ok {
		return newError(TypeMismatch, "Invalid memory write: offset must be a number")
	}
	v, ok := values[2].(*Number)
	if !ok {
		return newError(TypeMismatch, "Invalid memory write: value must be a number")
	}
	if err := e.Arena.Write(h, int(toInt64(off.Value)), v.Value, node.TypeName); err != nil {
		return err
	}
	return NULL
}
