package interpreter

import (
	"fmt"
	"io"
	"os"

	"axo/pkg/runtime"
)

// registerIOBuiltins installs write/read/readDir/copy. Every os.Open /
// os.Create call here is paired with an immediate defer Close so the
// handle is released on every return path including error, per spec.md §5's
// "scoped acquisition" requirement.
func (ip *Interpreter) registerIOBuiltins(reg func(string, runtime.NativeFunc)) {
	reg("write", builtinWrite)
	reg("read", builtinRead)
	reg("readDir", builtinReadDir)
	reg("copy", builtinCopy)
}

func builtinWrite(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "write"); err != nil {
		return nil, err
	}
	path, ok1 := args[0].(runtime.StringValue)
	content, ok2 := args[1].(runtime.StringValue)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("write expects (path: string, content: string)")
	}
	f, err := os.Create(string(path))
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(string(content)); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return runtime.UnitValue{}, nil
}

func builtinRead(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "read"); err != nil {
		return nil, err
	}
	path, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, fmt.Errorf("read expects a string path")
	}
	f, err := os.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return runtime.StringValue(string(data)), nil
}

func builtinReadDir(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 1, "readDir"); err != nil {
		return nil, err
	}
	path, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, fmt.Errorf("readDir expects a string path")
	}
	entries, err := os.ReadDir(string(path))
	if err != nil {
		return nil, fmt.Errorf("readDir %s: %w", path, err)
	}
	out := make([]runtime.Value, len(entries))
	for i, e := range entries {
		out[i] = runtime.StringValue(e.Name())
	}
	return &runtime.ArrayValue{Elements: out}, nil
}

func builtinCopy(args []runtime.Value) (runtime.Value, error) {
	if err := requireArgs(args, 2, "copy"); err != nil {
		return nil, err
	}
	src, ok1 := args[0].(runtime.StringValue)
	dst, ok2 := args[1].(runtime.StringValue)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("copy expects (src: string, dst: string)")
	}
	in, err := os.Open(string(src))
	if err != nil {
		return nil, fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(string(dst))
	if err != nil {
		return nil, fmt.Errorf("copy to %s: %w", dst, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return nil, fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return runtime.UnitValue{}, nil
}
