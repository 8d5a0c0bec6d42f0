package evaluator

import (
	"os"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/funvibe/ollang/internal/native"
)

const defaultTimeFormat = "%Y-%m-%d %H:%M:%S"

func systemBuiltins() map[string]BuiltinFunction {
	return map[string]BuiltinFunction{
		"sleep":     builtinSleep,
		"pid":       builtinPid,
		"tid":       builtinTid,
		"time":      builtinTime,
		"timestamp": builtinTimestamp,
		"ticks":     builtinTicks,
	}
}

func builtinSleep(e *Evaluator, args ...Object) Object {
	if err := checkArity("sleep", args, 1); err != nil {
		return err
	}
	ms, err := numberArg("sleep", args[0])
	if err != nil {
		return err
	}
	timer := time.NewTimer(time.Duration(ms * float64(time.Millisecond)))
	defer timer.Stop()
	if e.Context == nil {
		<-timer.C
		return NULL
	}
	select {
	case <-timer.C:
		return NULL
	case <-e.Context.Done():
		return newError(ExecutionLimit, "execution cancelled: %v", e.Context.Err())
	}
}

func builtinPid(e *Evaluator, args ...Object) Object {
	if err := checkArity("pid", args, 0); err != nil {
		return err
	}
	return &Number{Value: float64(os.Getpid())}
}

func builtinTid(e *Evaluator, args ...Object) Object {
	if err := checkArity("tid", args, 0); err != nil {
		return err
	}
	return &Number{Value: float64(native.ThreadID())}
}

// time([format]) formats local time with strftime directives.
func builtinTime(e *Evaluator, args ...Object) Object {
	if err := checkArityRange("time", args, 0, 1); err != nil {
		return err
	}
	layout := defaultTimeFormat
	if len(args) == 1 {
		s, err := stringArg("time", args[0])
		if err != nil {
			return err
		}
		layout = s
	}
	return &String{Value: strftime.Format(layout, time.Now())}
}

// timestamp is Unix time in seconds.
func builtinTimestamp(e *Evaluator, args ...Object) Object {
	if err := checkArity("timestamp", args, 0); err != nil {
		return err
	}
	return &Number{Value: float64(time.Now().Unix())}
}

// ticks is milliseconds since the interpreter started.
func builtinTicks(e *Evaluator, args ...Object) Object {
	if err := checkArity("ticks", args, 0); err != nil {
		return err
	}
	return &Number{Value: float64(time.Since(e.Started).Milliseconds())}
}
