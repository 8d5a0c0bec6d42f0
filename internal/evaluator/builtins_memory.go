package evaluator

func memoryBuiltins() map[string]BuiltinFunction {
	return map[string]BuiltinFunction{
		"memcpy": builtinMemcpy,
		"memset": builtinMemset,
		"ptr":    builtinPtr,
		"addr":   builtinAddr,
	}
}

// addressArg accepts a handle or a raw sandbox address.
func addressArg(name string, obj Object) (uint64, *Error) {
	switch obj := obj.(type) {
	case *MemoryHandle:
		return obj.Address(), nil
	case *Number:
		return uint64(toInt64(obj.Value)), nil
	}
	return 0, newError(TypeMismatch, "%s requires pointer, got %s", name, typeName(obj))
}

func builtinMemcpy(e *Evaluator, args ...Object) Object {
	if err := checkArity("memcpy", args, 3); err != nil {
		return err
	}
	dst, err := addressArg("memcpy", args[0])
	if err != nil {
		return err
	}
	src, err := addressArg("memcpy", args[1])
	if err != nil {
		return err
	}
	n, err := numberArg("memcpy", args[2])
	if err != nil {
		return err
	}
	data, err := e.Arena.ReadBytes(src, int(toInt64(n)))
	if err != nil {
		return err
	}
	if err := e.Arena.WriteBytes(dst, data); err != nil {
		return err
	}
	return args[0]
}

func builtinMemset(e *Evaluator, args ...Object) Object {
	if err := checkArity("memset", args, 3); err != nil {
		return err
	}
	dst, err := addressArg("memset", args[0])
	if err != nil {
		return err
	}
	v, err := numberArg("memset", args[1])
	if err != nil {
		return err
	}
	n, err := numberArg("memset", args[2])
	if err != nil {
		return err
	}
	count := int(toInt64(n))
	if count < 0 {
		return sandboxError("memset: negative length %d", count)
	}
	if err := e.Arena.Fill(dst, count, byte(toInt64(v))); err != nil {
		return err
	}
	return args[0]
}

// ptr returns a borrowed handle for a sandbox address.
func builtinPtr(e *Evaluator, args ...Object) Object {
	if err := checkArity("ptr", args, 1); err != nil {
		return err
	}
	addr, err := addressArg("ptr", args[0])
	if err != nil {
		return err
	}
	h, err := e.Arena.Borrow(addr)
	if err != nil {
		return err
	}
	return h
}

func builtinAddr(e *Evaluator, args ...Object) Object {
	if err := checkArity("addr", args, 1); err != nil {
		return err
	}
	h, ok := args[0].(*MemoryHandle)
	if !ok {
		return newError(TypeMismatch, "addr requires pointer, got %s", typeName(args[0]))
	}
	return &Number{Value: float64(h.Address())}
}
