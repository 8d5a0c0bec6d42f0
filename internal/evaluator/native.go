package evaluator

// importNative resolves ImportDLL(path, symbol[, alias]) and binds the
// result in env under the alias, or the symbol name without one.
func (e *Evaluator) importNative(env *Environment, args ...Object) Object {
	var strs []string
	for _, arg := range args {
		s, err := stringArg("ImportDLL", arg)
		if err != nil {
			return err
		}
		strs = append(strs, s)
	}
	path, symbol := strs[0], strs[1]
	alias := symbol
	if len(strs) == 3 && strs[2] != "" {
		alias = strs[2]
	}

	if e.Settings != nil && !e.Settings.Sandbox.AllowNative {
		return newError(NativeLibraryFailure, "native libraries are disabled")
	}
	if e.Natives == nil {
		return newError(NativeLibraryFailure, "Failed to load library: %s", path)
	}
	call, err := e.Natives.Resolve(path, symbol)
	if err != nil {
		return newError(NativeLibraryFailure, "%s", err.Error())
	}
	fn := &NativeFunction{Name: symbol, Library: path, Call: call}
	env.Set(alias, fn)
	return fn
}
