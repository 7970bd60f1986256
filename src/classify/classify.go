// Package classify derives display attributes for captured stack frames:
// a stable identity, whether the frame is library code, the enclosing
// package and a readable symbol.
package classify

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"go/build"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tracepage/src/fallback"
	"tracepage/src/trace"
)

// UnknownSymbol is reported when a function name cannot be parsed.
const UnknownSymbol = "n/a"

// Result is the classification of one frame.
type Result struct {
	ID           string
	Symbol       string
	Package      string
	RelativeFile string
	Vendor       bool
}

// Classifier holds the roots used to tell library code from application
// code. The zero value classifies nothing as vendor.
type Classifier struct {
	// LibraryRoots are directories holding installed library code: the Go
	// toolchain sources and the module cache.
	LibraryRoots []string
	// SourceRoots are prefixes stripped from file paths for display.
	SourceRoots []string
}

// New returns a Classifier with roots taken from the local Go installation.
func New() *Classifier {
	libs := DefaultLibraryRoots()
	src := append([]string{}, libs...)
	if goroot := build.Default.GOROOT; goroot != "" {
		src = append(src, filepath.Join(goroot, "src"))
	}
	if wd, err := os.Getwd(); err == nil {
		src = append(src, wd)
	}
	return &Classifier{LibraryRoots: libs, SourceRoots: src}
}

// DefaultLibraryRoots returns GOROOT and the module cache.
func DefaultLibraryRoots() []string {
	var roots []string
	if goroot := build.Default.GOROOT; goroot != "" {
		roots = append(roots, goroot)
	}
	if modcache := os.Getenv("GOMODCACHE"); modcache != "" {
		roots = append(roots, modcache)
	} else {
		for _, gopath := range filepath.SplitList(build.Default.GOPATH) {
			roots = append(roots, filepath.Join(gopath, "pkg", "mod"))
		}
	}
	return roots
}

// Classify never panics; lookups that fail degrade to empty values.
func (c *Classifier) Classify(f trace.Frame) Result {
	return Result{
		ID:           FrameID(f.File, f.Line),
		Symbol:       fallback.Must(UnknownSymbol, func() string { return Symbol(f.Function) }),
		Package:      fallback.Must("", func() string { return PackageName(f.Function) }),
		RelativeFile: fallback.Must(f.File, func() string { return c.RelativeFile(f.File) }),
		Vendor:       fallback.Must(false, func() bool { return c.IsVendor(f.File) }),
	}
}

// FrameID hashes the frame location. Two calls on the same line share an id.
func FrameID(file string, line int) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s%d", file, line)))
	return hex.EncodeToString(sum[:])
}

// IsVendor reports whether file lies under one of the library roots or a
// vendor directory.
func (c *Classifier) IsVendor(file string) bool {
	path := cleanPath(file)
	if path == "" {
		return false
	}
	if strings.Contains(path, "/vendor/") {
		return true
	}
	for _, root := range c.LibraryRoots {
		if underRoot(path, root) {
			return true
		}
	}
	return false
}

// RelativeFile strips the longest matching source root from file.
func (c *Classifier) RelativeFile(file string) string {
	path := cleanPath(file)
	roots := append([]string{}, c.SourceRoots...)
	sort.Slice(roots, func(i, j int) bool { return len(roots[i]) > len(roots[j]) })
	for _, root := range roots {
		if underRoot(path, root) {
			return strings.TrimPrefix(path, cleanPath(root)+"/")
		}
	}
	return path
}

func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	p = filepath.ToSlash(p)
	p = strings.ReplaceAll(p, "/./", "/")
	return strings.TrimPrefix(p, "./")
}

func underRoot(path, root string) bool {
	root = strings.TrimSuffix(cleanPath(root), "/")
	if root == "" {
		return false
	}
	return strings.HasPrefix(path, root+"/")
}
