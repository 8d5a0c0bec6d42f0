package evaluator

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func dataBuiltins() map[string]BuiltinFunction {
	return map[string]BuiltinFunction{
		"yaml_encode": builtinYamlEncode,
		"yaml_decode": builtinYamlDecode,
	}
}

// yamlDecode parses a YAML document. Maps become dicts, sequences arrays,
// and scalars numbers, strings, booleans or null.
func yamlDecode(content string) (Object, error) {
	var data interface{}
	if err := yaml.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("YAML parse error: %v", err)
	}
	return inferFromYaml(data)
}

// inferFromYaml converts the generic values yaml.v3 decodes into.
func inferFromYaml(data interface{}) (Object, error) {
	switch v := data.(type) {
	case nil:
		return NULL, nil
	case bool:
		return nativeBoolToBooleanObject(v), nil
	case int:
		return &Number{Value: float64(v)}, nil
	case int64:
		return &Number{Value: float64(v)}, nil
	case uint64:
		return &Number{Value: float64(v)}, nil
	case float64:
		return &Number{Value: v}, nil
	case string:
		return &String{Value: v}, nil
	case []interface{}:
		elements := make([]Object, len(v))
		for i, item := range v {
			obj, err := inferFromYaml(item)
			if err != nil {
				return nil, err
			}
			elements[i] = obj
		}
		return &Array{Elements: elements}, nil
	case map[string]interface{}:
		dict := NewDict()
		for k, val := range v {
			obj, err := inferFromYaml(val)
			if err != nil {
				return nil, err
			}
			dict.Pairs[k] = obj
		}
		return dict, nil
	case map[interface{}]interface{}:
		dict := NewDict()
		for k, val := range v {
			obj, err := inferFromYaml(val)
			if err != nil {
				return nil, err
			}
			dict.Pairs[fmt.Sprintf("%v", k)] = obj
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported YAML value type: %T", data)
	}
}

// yamlEncode converts a value to a YAML document.
func yamlEncode(obj Object) (string, error) {
	value, err := objectToGo(obj)
	if err != nil {
		return "", err
	}
	bytes, err := yaml.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("YAML encoding error: %v", err)
	}
	return string(bytes), nil
}

// objectToGo maps data values onto plain Go values. Integral numbers
// become int64 so they encode without a fraction.
func objectToGo(obj Object) (interface{}, error) {
	switch o := obj.(type) {
	case *Null:
		return nil, nil
	case *Boolean:
		return o.Value, nil
	case *Number:
		if o.Value == float64(toInt64(o.Value)) {
			return toInt64(o.Value), nil
		}
		return o.Value, nil
	case *String:
		return o.Value, nil
	case *Array:
		out := make([]interface{}, len(o.Elements))
		for i, el := range o.Elements {
			v, err := objectToGo(el)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case *Dict:
		out := make(map[string]interface{}, len(o.Pairs))
		for k, el := range o.Pairs {
			v, err := objectToGo(el)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot encode %s", typeName(obj))
}

func builtinYamlEncode(e *Evaluator, args ...Object) Object {
	if err := checkArity("yaml_encode", args, 1); err != nil {
		return err
	}
	s, err := yamlEncode(args[0])
	if err != nil {
		return newError(TypeMismatch, "yaml_encode: %v", err)
	}
	return &String{Value: s}
}

func builtinYamlDecode(e *Evaluator, args ...Object) Object {
	if err := checkArity("yaml_decode", args, 1); err != nil {
		return err
	}
	s, serr := stringArg("yaml_decode", args[0])
	if serr != nil {
		return serr
	}
	obj, err := yamlDecode(s)
	if err != nil {
		return newError(InvalidOperation, "yaml_decode: %v", err)
	}
	return obj
}
