package evaluator

import (
	"os"
)

// File builtins report success as a boolean and never raise for I/O
// failures; only misuse is an error.
func fileBuiltins() map[string]BuiltinFunction {
	fns := map[string]BuiltinFunction{
		"file_write":  builtinFileWrite,
		"file_read":   builtinFileRead,
		"file_append": builtinFileAppend,
		"file_exists": builtinFileExists,
		"file_delete": builtinFileDelete,
	}
	aliases := map[string]string{
		"writeFile":  "file_write",
		"readFile":   "file_read",
		"appendFile": "file_append",
		"fileExists": "file_exists",
		"deleteFile": "file_delete",
	}
	for alias, name := range aliases {
		fns[alias] = fns[name]
	}
	return fns
}

func pathAndContent(name string, args []Object) (string, string, *Error) {
	if err := checkArity(name, args, 2); err != nil {
		return "", "", err
	}
	path, err := stringArg(name, args[0])
	if err != nil {
		return "", "", err
	}
	return path, args[1].Inspect(), nil
}

func builtinFileWrite(e *Evaluator, args ...Object) Object {
	path, content, err := pathAndContent("file_write", args)
	if err != nil {
		return err
	}
	return nativeBoolToBooleanObject(os.WriteFile(path, []byte(content), 0o644) == nil)
}

func builtinFileAppend(e *Evaluator, args ...Object) Object {
	path, content, err := pathAndContent("file_append", args)
	if err != nil {
		return err
	}
	f, ferr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if ferr != nil {
		return FALSE
	}
	defer f.Close()
	_, werr := f.WriteString(content)
	return nativeBoolToBooleanObject(werr == nil)
}

// file_read returns the contents, or null when the file cannot be read.
func builtinFileRead(e *Evaluator, args ...Object) Object {
	if err := checkArity("file_read", args, 1); err != nil {
		return err
	}
	path, err := stringArg("file_read", args[0])
	if err != nil {
		return err
	}
	data, rerr := os.ReadFile(path)
	if rerr != nil {
		return NULL
	}
	return &String{Value: string(data)}
}

func builtinFileExists(e *Evaluator, args ...Object) Object {
	if err := checkArity("file_exists", args, 1); err != nil {
		return err
	}
	path, err := stringArg("file_exists", args[0])
	if err != nil {
		return err
	}
	_, serr := os.Stat(path)
	return nativeBoolToBooleanObject(serr == nil)
}

func builtinFileDelete(e *Evaluator, args ...Object) Object {
	if err := checkArity("file_delete", args, 1); err != nil {
		return err
	}
	path, err := stringArg("file_delete", args[0])
	if err != nil {
		return err
	}
	return nativeBoolToBooleanObject(os.Remove(path) == nil)
}
