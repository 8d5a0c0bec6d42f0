package ollang

import (
	"fmt"
	"reflect"

	"github.com/funvibe/ollang/internal/evaluator"
)

var (
	objectType = reflect.TypeOf((*evaluator.Object)(nil)).Elem()
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

// Marshaller handles conversion between Go and OLLang values.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to an OLLang Object. Structs become dicts of
// their exported fields and Go functions become callable builtins.
func (m *Marshaller) ToValue(val interface{}) (evaluator.Object, error) {
	if val == nil {
		return evaluator.NULL, nil
	}
	if obj, ok := val.(evaluator.Object); ok {
		return obj, nil
	}
	return m.toValue(reflect.ValueOf(val))
}

func (m *Marshaller) toValue(v reflect.Value) (evaluator.Object, error) {
	if !v.IsValid() {
		return evaluator.NULL, nil
	}
	if v.Type().Implements(objectType) && v.CanInterface() {
		if v.Kind() == reflect.Ptr && v.IsNil() {
			return evaluator.NULL, nil
		}
		return v.Interface().(evaluator.Object), nil
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &evaluator.Number{Value: float64(v.Int())}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return &evaluator.Number{Value: float64(v.Uint())}, nil
	case reflect.Float32, reflect.Float64:
		return &evaluator.Number{Value: v.Float()}, nil
	case reflect.Bool:
		if v.Bool() {
			return evaluator.TRUE, nil
		}
		return evaluator.FALSE, nil
	case reflect.String:
		return &evaluator.String{Value: v.String()}, nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return &evaluator.Array{}, nil
		}
		return m.sliceToArray(v)
	case reflect.Map:
		return m.mapToDict(v)
	case reflect.Struct:
		return m.structToDict(v)
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return evaluator.NULL, nil
		}
		return m.toValue(v.Elem())
	case reflect.Func:
		if v.IsNil() {
			return evaluator.NULL, nil
		}
		return m.hostFunction("host", v), nil
	}
	return nil, fmt.Errorf("unsupported Go type %s", v.Type())
}

func (m *Marshaller) sliceToArray(v reflect.Value) (*evaluator.Array, error) {
	elements := make([]evaluator.Object, v.Len())
	for i := 0; i < v.Len(); i++ {
		val, err := m.toValue(v.Index(i))
		if err != nil {
			return nil, err
		}
		elements[i] = val
	}
	return &evaluator.Array{Elements: elements}, nil
}

// mapToDict stringifies keys, since dict keys are always strings.
func (m *Marshaller) mapToDict(v reflect.Value) (*evaluator.Dict, error) {
	result := evaluator.NewDict()
	iter := v.MapRange()
	for iter.Next() {
		val, err := m.toValue(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		result.Pairs[fmt.Sprint(iter.Key().Interface())] = val
	}
	return result, nil
}

func (m *Marshaller) structToDict(v reflect.Value) (*evaluator.Dict, error) {
	result := evaluator.NewDict()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // Skip unexported fields
			continue
		}
		val, err := m.toValue(v.Field(i))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		result.Pairs[field.Name] = val
	}
	return result, nil
}

// FromValue converts an OLLang Object to a Go value. targetType is
// optional; without it numbers come back as float64, arrays as
// []interface{} and dicts as map[string]interface{}.
func (m *Marshaller) FromValue(obj evaluator.Object, targetType reflect.Type) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}
	if targetType == nil || targetType.Kind() == reflect.Interface && targetType != objectType {
		return m.fromValueDefault(obj)
	}
	v, err := m.fromValueTo(obj, targetType)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (m *Marshaller) fromValueDefault(obj evaluator.Object) (interface{}, error) {
	switch o := obj.(type) {
	case *evaluator.Number:
		return o.Value, nil
	case *evaluator.String:
		return o.Value, nil
	case *evaluator.Boolean:
		return o.Value, nil
	case *evaluator.Null:
		return nil, nil
	case *evaluator.Array:
		out := make([]interface{}, len(o.Elements))
		for i, el := range o.Elements {
			v, err := m.fromValueDefault(el)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case *evaluator.Dict:
		out := make(map[string]interface{}, len(o.Pairs))
		for k, el := range o.Pairs {
			v, err := m.fromValueDefault(el)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}
	// Functions, handles and pointers stay opaque to Go.
	return obj, nil
}

func (m *Marshaller) fromValueTo(obj evaluator.Object, t reflect.Type) (reflect.Value, error) {
	if t == objectType {
		return reflect.ValueOf(&obj).Elem(), nil
	}
	if _, ok := obj.(*evaluator.Null); ok {
		return reflect.Zero(t), nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		n, ok := obj.(*evaluator.Number)
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", obj.Type(), t)
		}
		return reflect.ValueOf(n.Value).Convert(t), nil
	case reflect.String:
		if s, ok := obj.(*evaluator.String); ok {
			return reflect.ValueOf(s.Value).Convert(t), nil
		}
		return reflect.ValueOf(obj.Inspect()).Convert(t), nil
	case reflect.Bool:
		b, ok := obj.(*evaluator.Boolean)
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", obj.Type(), t)
		}
		return reflect.ValueOf(b.Value).Convert(t), nil
	case reflect.Slice:
		arr, ok := obj.(*evaluator.Array)
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", obj.Type(), t)
		}
		slice := reflect.MakeSlice(t, 0, len(arr.Elements))
		for i, el := range arr.Elements {
			ev, err := m.fromValueTo(el, t.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			slice = reflect.Append(slice, ev)
		}
		return slice, nil
	case reflect.Map:
		dict, ok := obj.(*evaluator.Dict)
		if !ok || t.Key().Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", obj.Type(), t)
		}
		result := reflect.MakeMapWithSize(t, len(dict.Pairs))
		for k, el := range dict.Pairs {
			ev, err := m.fromValueTo(el, t.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("map value %q: %w", k, err)
			}
			result.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), ev)
		}
		return result, nil
	case reflect.Struct:
		dict, ok := obj.(*evaluator.Dict)
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", obj.Type(), t)
		}
		return m.dictToStruct(dict, t)
	case reflect.Ptr:
		ev, err := m.fromValueTo(obj, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(ev)
		return p, nil
	case reflect.Interface:
		v, err := m.fromValueDefault(obj)
		if err != nil {
			return reflect.Value{}, err
		}
		if v == nil {
			return reflect.Zero(t), nil
		}
		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(t) {
			return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", obj.Type(), t)
		}
		return rv, nil
	}
	return reflect.Value{}, fmt.Errorf("unsupported Go type %s", t)
}

// dictToStruct fills exported fields by name; keys without a field are
// ignored.
func (m *Marshaller) dictToStruct(dict *evaluator.Dict, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	for _, k := range dict.Keys() {
		field, ok := t.FieldByName(k)
		if !ok || field.PkgPath != "" {
			continue
		}
		fv, err := m.fromValueTo(dict.Pairs[k], field.Type)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("field %s: %w", k, err)
		}
		out.FieldByIndex(field.Index).Set(fv)
	}
	return out, nil
}

// hostFunction wraps a Go func as a builtin. Arguments are converted to
// the parameter types; a trailing error result that is non-nil raises a
// catchable error in the script.
func (m *Marshaller) hostFunction(name string, fn reflect.Value) *evaluator.Builtin {
	return &evaluator.Builtin{Name: name, Fn: func(e *evaluator.Evaluator, args ...evaluator.Object) evaluator.Object {
		result, err := m.callHost(fn, args)
		if err != nil {
			return &evaluator.Error{Kind: evaluator.UserError, Message: fmt.Sprintf("%s: %v", name, err)}
		}
		return result
	}}
}

func (m *Marshaller) callHost(fn reflect.Value, args []evaluator.Object) (evaluator.Object, error) {
	fnType := fn.Type()
	numIn := fnType.NumIn()
	isVariadic := fnType.IsVariadic()

	if isVariadic {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("expected at least %d arguments, got %d", numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("expected %d arguments, got %d", numIn, len(args))
	}

	goArgs := make([]reflect.Value, len(args))
	for i, arg := range args {
		var targetType reflect.Type
		if isVariadic && i >= numIn-1 {
			targetType = fnType.In(numIn - 1).Elem()
		} else {
			targetType = fnType.In(i)
		}
		val, err := m.fromValueTo(arg, targetType)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		goArgs[i] = val
	}

	results := fn.Call(goArgs)
	if n := len(results); n > 0 && fnType.Out(n-1) == errorType {
		if err, _ := results[n-1].Interface().(error); err != nil {
			return nil, err
		}
		results = results[:n-1]
	}

	switch len(results) {
	case 0:
		return evaluator.NULL, nil
	case 1:
		return m.toValue(results[0])
	}
	return m.sliceToArray(reflect.ValueOf(valuesToInterfaces(results)))
}

func valuesToInterfaces(values []reflect.Value) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v.Interface()
	}
	return out
}
