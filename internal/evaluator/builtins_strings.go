package evaluator

import (
	"strings"
)

func stringBuiltins() map[string]BuiltinFunction {
	return map[string]BuiltinFunction{
		"upper":   stringMap("upper", strings.ToUpper),
		"lower":   stringMap("lower", strings.ToLower),
		"trim":    stringMap("trim", strings.TrimSpace),
		"split":   builtinSplit,
		"replace": builtinReplace,
		"substr":  builtinSubstr,
	}
}

func stringMap(name string, fn func(string) string) BuiltinFunction {
	return func(e *Evaluator, args ...Object) Object {
		if err := checkArity(name, args, 1); err != nil {
			return err
		}
		s, err := stringArg(name, args[0])
		if err != nil {
			return err
		}
		return &String{Value: fn(s)}
	}
}

// split with an empty separator yields the characters.
func builtinSplit(e *Evaluator, args ...Object) Object {
	if err := checkArity("split", args, 2); err != nil {
		return err
	}
	s, err := stringArg("split", args[0])
	if err != nil {
		return err
	}
	sep, err := stringArg("split", args[1])
	if err != nil {
		return err
	}
	parts := strings.Split(s, sep)
	elements := make([]Object, len(parts))
	for i, p := range parts {
		elements[i] = &String{Value: p}
	}
	return &Array{Elements: elements}
}

func builtinReplace(e *Evaluator, args ...Object) Object {
	if err := checkArity("replace", args, 3); err != nil {
		return err
	}
	var strs [3]string
	for i, arg := range args {
		s, err := stringArg("replace", arg)
		if err != nil {
			return err
		}
		strs[i] = s
	}
	return &String{Value: strings.ReplaceAll(strs[0], strs[1], strs[2])}
}

// substr(s, start[, length]) clamps to the string.
func builtinSubstr(e *Evaluator, args ...Object) Object {
	if err := checkArityRange("substr", args, 2, 3); err != nil {
		return err
	}
	s, err := stringArg("substr", args[0])
	if err != nil {
		return err
	}
	start, err := numberArg("substr", args[1])
	if err != nil {
		return err
	}
	runes := []rune(s)
	from := clamp(int(toInt64(start)), 0, len(runes))
	to := len(runes)
	if len(args) == 3 {
		n, err := numberArg("substr", args[2])
		if err != nil {
			return err
		}
		to = clamp(from+int(toInt64(n)), from, len(runes))
	}
	return &String{Value: string(runes[from:to])}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
