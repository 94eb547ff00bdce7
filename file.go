package jsondoc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// PathResolver maps the file names given to ParseFile and ToFile onto the
// filesystem. With a root, relative names resolve beneath it and nothing may
// escape it; without one, names resolve against the working directory.
type PathResolver struct {
	root     string
	validate bool
}

// NewPathResolver creates a resolver. An empty root disables sandboxing.
func NewPathResolver(root string, validate bool) (*PathResolver, error) {
	if root == "" {
		return &PathResolver{validate: validate}, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, newPathError("resolve_root", root, "invalid root", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return &PathResolver{root: abs, validate: validate}, nil
}

// Root returns the sandbox root, empty when none is set.
func (r *PathResolver) Root() string { return r.root }

// Resolve returns the absolute path for name.
func (r *PathResolver) Resolve(name string) (string, error) {
	if name == "" {
		return "", newOperationError("resolve_path", "file path cannot be empty", ErrOperationFailed)
	}
	if r.validate {
		if err := validatePathText(name); err != nil {
			return "", err
		}
	}

	var abs string
	if r.root != "" {
		if filepath.IsAbs(name) {
			abs = filepath.Clean(name)
		} else {
			abs = filepath.Join(r.root, name)
		}
		if !within(r.root, abs) {
			return "", newSecurityError("resolve_path", "path escapes the file root")
		}
		// A symlink inside the root may still point outside it.
		if resolved, err := filepath.EvalSymlinks(abs); err == nil && !within(r.root, resolved) {
			return "", newSecurityError("resolve_path", "symlink escapes the file root")
		}
		return abs, nil
	}

	var err error
	abs, err = filepath.Abs(filepath.Clean(name))
	if err != nil {
		return "", newPathError("resolve_path", name, "invalid path", err)
	}
	if r.validate && runtime.GOOS != "windows" {
		if err := validateUnixPath(abs); err != nil {
			return "", err
		}
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			if err := validateUnixPath(resolved); err != nil {
				return "", err
			}
		}
	}
	return abs, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// validatePathText rejects names that are unsafe regardless of where they
// resolve.
func validatePathText(name string) error {
	if strings.Contains(name, "\x00") {
		return newSecurityError("validate_file_path", "null byte in path")
	}
	if len(name) > MaxPathLength {
		return newOperationError("validate_file_path",
			fmt.Sprintf("path too long: %d > %d", len(name), MaxPathLength), ErrOperationFailed)
	}
	cleanPath := filepath.Clean(name)
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return newSecurityError("validate_file_path", "path traversal detected")
	}
	if runtime.GOOS == "windows" {
		return validateWindowsPath(cleanPath)
	}
	return nil
}

// validateUnixPath blocks access to critical system locations
func validateUnixPath(absPath string) error {
	for _, dir := range []string{"/dev/", "/proc/", "/sys/", "/etc/passwd", "/etc/shadow", "/etc/sudoers"} {
		if strings.HasPrefix(absPath, dir) {
			return newSecurityError("validate_unix_path", "access to system directory not allowed")
		}
	}
	return nil
}

// validateWindowsPath validates Windows-specific path security
func validateWindowsPath(path string) error {
	filename := strings.ToUpper(filepath.Base(path))
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		filename = filename[:idx]
	}
	switch filename {
	case "CON", "PRN", "AUX", "NUL":
		return newSecurityError("validate_windows_path", "Windows reserved device name")
	}
	if len(filename) == 4 && filename[3] >= '1' && filename[3] <= '9' {
		if prefix := filename[:3]; prefix == "COM" || prefix == "LPT" {
			return newSecurityError("validate_windows_path", "Windows reserved device name")
		}
	}
	return nil
}

// readFile loads a file within the processor's size limit.
func (p *Processor) readFile(ctx context.Context, name string) (string, string, error) {
	path, err := p.resolver.Resolve(name)
	if err != nil {
		p.logError(ctx, "parse_file", name, err)
		return "", "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		err = &OpError{Op: "parse_file", Path: name, Message: "cannot open file", Err: err}
		p.logError(ctx, "parse_file", name, err)
		return "", path, err
	}
	if info.Size() > p.config.MaxJSONSize {
		err = newSizeLimitError("parse_file", info.Size(), p.config.MaxJSONSize)
		p.logError(ctx, "parse_file", name, err)
		return "", path, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		err = &OpError{Op: "parse_file", Path: name, Message: "cannot read file", Err: err}
		p.logError(ctx, "parse_file", name, err)
		return "", path, err
	}
	return string(data), path, nil
}

// writeFile serializes v into name, creating parent directories when the
// configuration asks for it.
func (p *Processor) writeFile(ctx context.Context, name string, v *Value, flags WriteFlag) error {
	if err := p.checkClosed(); err != nil {
		return err
	}
	path, err := p.resolver.Resolve(name)
	if err != nil {
		p.logError(ctx, "write_file", name, err)
		return err
	}
	out, err := v.ToBytes(flags)
	if err != nil {
		p.logError(ctx, "write_file", name, err)
		return err
	}
	if p.config.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(path), DefaultDirPerm); err != nil {
			err = &OpError{Op: "write_file", Path: name, Message: "cannot create directory", Err: err}
			p.logError(ctx, "write_file", name, err)
			return err
		}
	}
	if err := os.WriteFile(path, out, p.config.FilePerm); err != nil {
		err = &OpError{Op: "write_file", Path: name, Message: "cannot write file", Err: err}
		p.logError(ctx, "write_file", name, err)
		return err
	}
	return nil
}
