package evaluator

import (
	"math"
	"math/rand"
)

func mathBuiltins() map[string]BuiltinFunction {
	return map[string]BuiltinFunction{
		"abs":     unaryMath("abs", math.Abs),
		"sqrt":    unaryMath("sqrt", math.Sqrt),
		"sin":     unaryMath("sin", math.Sin),
		"cos":     unaryMath("cos", math.Cos),
		"tan":     unaryMath("tan", math.Tan),
		"log":     unaryMath("log", math.Log),
		"log10":   unaryMath("log10", math.Log10),
		"exp":     unaryMath("exp", math.Exp),
		"floor":   unaryMath("floor", math.Floor),
		"ceil":    unaryMath("ceil", math.Ceil),
		"round":   unaryMath("round", math.Round),
		"pow":     builtinPow,
		"max":     extremum("max", math.Max),
		"min":     extremum("min", math.Min),
		"rand":    builtinRand,
		"randint": builtinRandint,
		"random":  builtinRandom,
	}
}

func unaryMath(name string, fn func(float64) float64) BuiltinFunction {
	return func(e *Evaluator, args ...Object) Object {
		if err := checkArity(name, args, 1); err != nil {
			return err
		}
		x, err := numberArg(name, args[0])
		if err != nil {
			return err
		}
		return &Number{Value: fn(x)}
	}
}

func builtinPow(e *Evaluator, args ...Object) Object {
	if err := checkArity("pow", args, 2); err != nil {
		return err
	}
	x, err := numberArg("pow", args[0])
	if err != nil {
		return err
	}
	y, err := numberArg("pow", args[1])
	if err != nil {
		return err
	}
	return &Number{Value: math.Pow(x, y)}
}

// extremum accepts either numbers or a single array of numbers.
func extremum(name string, pick func(a, b float64) float64) BuiltinFunction {
	return func(e *Evaluator, args ...Object) Object {
		if len(args) == 1 {
			if arr, ok := args[0].(*Array); ok {
				args = arr.Elements
			}
		}
		if len(args) == 0 {
			return newError(ArityMismatch, "%s expects at least 1 argument(s)", name)
		}
		best, err := numberArg(name, args[0])
		if err != nil {
			return err
		}
		for _, arg := range args[1:] {
			x, err := numberArg(name, arg)
			if err != nil {
				return err
			}
			best = pick(best, x)
		}
		return &Number{Value: best}
	}
}

// rand() is a float in [0, 1); rand(n) an integer in [0, n); rand(a, b)
// an integer in [a, b].
func builtinRand(e *Evaluator, args ...Object) Object {
	if err := checkArityRange("rand", args, 0, 2); err != nil {
		return err
	}
	switch len(args) {
	case 0:
		return &Number{Value: rand.Float64()}
	case 1:
		n, err := numberArg("rand", args[0])
		if err != nil {
			return err
		}
		if n < 1 {
			return &Number{Value: 0}
		}
		return &Number{Value: float64(rand.Int63n(toInt64(n)))}
	}
	return builtinRandint(e, args...)
}

func builtinRandint(e *Evaluator, args ...Object) Object {
	if err := checkArity("randint", args, 2); err != nil {
		return err
	}
	a, err := numberArg("randint", args[0])
	if err != nil {
		return err
	}
	b, err := numberArg("randint", args[1])
	if err != nil {
		return err
	}
	lo, hi := toInt64(a), toInt64(b)
	if hi < lo {
		lo, hi = hi, lo
	}
	span := hi - lo + 1
	if span <= 0 {
		return &Number{Value: float64(lo)}
	}
	return &Number{Value: float64(lo + rand.Int63n(span))}
}

func builtinRandom(e *Evaluator, args ...Object) Object {
	if err := checkArity("random", args, 0); err != nil {
		return err
	}
	return &Number{Value: rand.Float64()}
}
