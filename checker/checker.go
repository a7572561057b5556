// Package checker verifies asset requirements against a project root.
//
// Missing files and wrong types are ordinary results. Only unexpected I/O
// failures, such as a permission error while probing a path, are returned as
// errors; callers treat those as fatal for the run.
package checker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/c360studio/assetcheck/asset"
)

// Result is the outcome of checking a single requirement.
type Result struct {
	Requirement asset.Requirement
	OK          bool
	Message     string
	// Missing holds the sorted member names absent from a present directory.
	Missing     []string
}

// Check dispatches to the file or directory checker based on the kind.
func Check(root string, req asset.Requirement) (Result, error) {
	switch req.Kind {
	case asset.KindFile:
		return CheckFile(root, req)
	case asset.KindDirectory:
		return CheckDirectory(root, req)
	default:
		return Result{}, fmt.Errorf("unsupported requirement kind: %s", req.Kind)
	}
}

// CheckFile passes when root/path is a regular file.
func CheckFile(root string, req asset.Requirement) (Result, error) {
	target, err := Resolve(root, req.Path)
	if err != nil {
		return Result{}, err
	}

	info, err := stat(target)
	if err != nil {
		return Result{}, fmt.Errorf("check %s: %w", req.Label, err)
	}

	res := Result{Requirement: req}
	switch {
	case info == nil:
		res.Message = fmt.Sprintf("%s: missing (%s)", req.Label, req.Path)
	case !info.Mode().IsRegular():
		res.Message = fmt.Sprintf("%s: expected a file but found something else at %s", req.Label, req.Path)
	default:
		res.OK = true
		res.Message = fmt.Sprintf("%s: found at %s", req.Label, req.Path)
	}
	return res, nil
}

// CheckDirectory passes when root/path is a directory holding every member
// as a regular file. An absent directory is reported as missing, never as
// partially present.
func CheckDirectory(root string, req asset.Requirement) (Result, error) {
	target, err := Resolve(root, req.Path)
	if err != nil {
		return Result{}, err
	}

	info, err := stat(target)
	if err != nil {
		return Result{}, fmt.Errorf("check %s: %w", req.Label, err)
	}

	res := Result{Requirement: req}
	if info == nil {
		res.Message = fmt.Sprintf("%s: directory missing (%s)", req.Label, req.Path)
		return res, nil
	}
	if !info.IsDir() {
		res.Message = fmt.Sprintf("%s: expected a directory but found a file at %s", req.Label, req.Path)
		return res, nil
	}

	var missing []string
	for _, member := range req.Members {
		memberInfo, err := stat(filepath.Join(target, member))
		if err != nil {
			return Result{}, fmt.Errorf("check %s member %q: %w", req.Label, member, err)
		}
		if memberInfo == nil || !memberInfo.Mode().IsRegular() {
			missing = append(missing, member)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		res.Missing = missing
		res.Message = fmt.Sprintf("%s: directory present but missing %d file(s): %s",
			req.Label, len(missing), strings.Join(missing, ", "))
		return res, nil
	}

	res.OK = true
	res.Message = fmt.Sprintf("%s: all %d files present", req.Label, len(req.Members))
	return res, nil
}

// Resolve joins a slash-separated path onto root, ensuring the result stays
// within root.
func Resolve(root, rel string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root: %w", err)
	}

	prefix := absRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	fullPath := filepath.Join(absRoot, filepath.FromSlash(rel))
	if !strings.HasPrefix(fullPath, prefix) && fullPath != absRoot {
		return "", fmt.Errorf("path %q is outside the project root", rel)
	}

	return fullPath, nil
}

// stat follows symlinks. A nil FileInfo with a nil error means the path does
// not exist, including when an ancestor is not a directory.
func stat(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info, nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return nil, nil
	}
	return nil, err
}
