package evaluator

import "math"

func arrayBuiltins() map[string]BuiltinFunction {
	return map[string]BuiltinFunction{
		"push":   builtinPush,
		"pop":    builtinPop,
		"slice":  builtinSlice,
		"range":  builtinRange,
		"map":    builtinMap,
		"filter": builtinFilter,
	}
}

// push appends in place and returns the new length.
func builtinPush(e *Evaluator, args ...Object) Object {
	if len(args) < 2 {
		return newError(ArityMismatch, "push expects at least 2 argument(s), got %d", len(args))
	}
	arr, err := arrayArg("push", args[0])
	if err != nil {
		return err
	}
	arr.Elements = append(arr.Elements, args[1:]...)
	return &Number{Value: float64(len(arr.Elements))}
}

func builtinPop(e *Evaluator, args ...Object) Object {
	if err := checkArity("pop", args, 1); err != nil {
		return err
	}
	arr, err := arrayArg("pop", args[0])
	if err != nil {
		return err
	}
	if len(arr.Elements) == 0 {
		return NULL
	}
	last := arr.Elements[len(arr.Elements)-1]
	arr.Elements = arr.Elements[:len(arr.Elements)-1]
	return last
}

// slice(arr, start[, end]) copies; negative bounds count from the end.
func builtinSlice(e *Evaluator, args ...Object) Object {
	if err := checkArityRange("slice", args, 2, 3); err != nil {
		return err
	}
	bound := func(obj Object, n int) (int, *Error) {
		f, err := numberArg("slice", obj)
		if err != nil {
			return 0, err
		}
		i := int(toInt64(f))
		if i < 0 {
			i += n
		}
		return clamp(i, 0, n), nil
	}

	var n int
	var runes []rune
	arr, isArray := args[0].(*Array)
	switch src := args[0].(type) {
	case *Array:
		n = len(src.Elements)
	case *String:
		runes = []rune(src.Value)
		n = len(runes)
	default:
		return newError(TypeMismatch, "slice requires array or string, got %s", typeName(args[0]))
	}

	from, err := bound(args[1], n)
	if err != nil {
		return err
	}
	to := n
	if len(args) == 3 {
		if to, err = bound(args[2], n); err != nil {
			return err
		}
	}
	if to < from {
		to = from
	}
	if isArray {
		return &Array{Elements: append([]Object(nil), arr.Elements[from:to]...)}
	}
	return &String{Value: string(runes[from:to])}
}

// range(stop), range(start, stop) or range(start, stop, step).
func builtinRange(e *Evaluator, args ...Object) Object {
	if err := checkArityRange("range", args, 1, 3); err != nil {
		return err
	}
	nums := make([]float64, len(args))
	for i, arg := range args {
		n, err := numberArg("range", arg)
		if err != nil {
			return err
		}
		nums[i] = n
	}
	start, stop, step := 0.0, nums[0], 1.0
	if len(nums) >= 2 {
		start, stop = nums[0], nums[1]
	}
	if len(nums) == 3 {
		step = nums[2]
	}
	if step == 0 {
		return newError(InvalidOperation, "range step must not be zero")
	}
	count := math.Ceil((stop - start) / step)
	if count < 0 || math.IsNaN(count) {
		count = 0
	}
	if count > math.MaxInt32 {
		count = math.MaxInt32 + 1
	}
	if err := e.checkArrayLen(int(count)); err != nil {
		return err
	}
	result := &Array{}
	if count <= 1<<16 {
		result.Elements = make([]Object, 0, int(count))
	}
	for x := start; (step > 0 && x < stop) || (step < 0 && x > stop); x += step {
		result.Elements = append(result.Elements, &Number{Value: x})
	}
	return result
}

func builtinMap(e *Evaluator, args ...Object) Object {
	if err := checkArity("map", args, 2); err != nil {
		return err
	}
	arr, err := arrayArg("map", args[1])
	if err != nil {
		return err
	}
	result := &Array{Elements: make([]Object, 0, len(arr.Elements))}
	for _, el := range append([]Object(nil), arr.Elements...) {
		val := e.ApplyFunction(args[0], []Object{el})
		if isError(val) {
			return val
		}
		result.Elements = append(result.Elements, val)
	}
	return result
}

func builtinFilter(e *Evaluator, args ...Object) Object {
	if err := checkArity("filter", args, 2); err != nil {
		return err
	}
	arr, err := arrayArg("filter", args[1])
	if err != nil {
		return err
	}
	result := &Array{}
	for _, el := range append([]Object(nil), arr.Elements...) {
		keep := e.ApplyFunction(args[0], []Object{el})
		if isError(keep) {
			return keep
		}
		if isTruthy(keep) {
			result.Elements = append(result.Elements, el)
		}
	}
	return result
}
