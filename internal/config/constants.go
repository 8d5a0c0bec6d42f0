package config

import (
	"path/filepath"
	"strings"
)

const SourceFileExt = ".oll"

// Version is reported by "ollang version"; release builds set it with
// -ldflags.
var Version = "0.1.0"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".oll", ".ollang"}

// SettingsFileName is looked up in the working directory when no
// explicit config file is given.
const SettingsFileName = ".ollang.yaml"

// Built-in function names
const (
	PrintFuncName      = "print"
	PrintlnFuncName    = "println"
	LenFuncName        = "len"
	TypeFuncName       = "type"
	ThrowFuncName      = "throw"
	ImportDLLFuncName  = "ImportDLL"
	AsyncSleepFuncName = "async_sleep"
	ExitFuncName       = "exit"
)

// Names the OS statement forms lower to. They are resolved like any
// other binding and are supplied by the embedder.
const (
	FindProcessFuncName  = "find_process"
	OpenProcessFuncName  = "open_process"
	CloseHandleFuncName  = "close_handle"
	InjectDLLFuncName    = "inject_dll"
	WriteJmpFuncName     = "write_jmp"
	WriteCallFuncName    = "write_call"
	ScanMemoryFuncName   = "scan_memory"
	FindWindowFuncName   = "find_window"
	WindowPidFuncName    = "get_window_pid"
	CreateThreadFuncName = "create_thread"
	SuspendThreadName    = "suspend_thread"
	ResumeThreadName     = "resume_thread"
)

// HasSourceExt reports whether path ends in a recognized extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized extension from name.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// ModuleFileName turns a bare import name into a file name: the default
// extension is appended when the name has no dot in its base.
func ModuleFileName(name string) string {
	if strings.Contains(filepath.Base(name), ".") {
		return name
	}
	return name + SourceFileExt
}
