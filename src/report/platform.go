package report

import (
	"go/build"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"tracepage/src/redact"
)

// Platform describes the running binary. Values are shown verbatim.
func Platform() []Entry {
	executable, err := os.Executable()
	if err != nil {
		executable = "unknown"
	}

	paths := []string{build.Default.GOROOT}
	paths = append(paths, filepath.SplitList(build.Default.GOPATH)...)

	return []Entry{
		plain("Go version", runtime.Version()),
		plain("Platform", runtime.GOOS+"/"+runtime.GOARCH),
		plain("Executable", executable),
		plain("Paths", strings.Join(paths, "\n")),
	}
}

// Environment lists the process environment sorted by name. Values are
// operator-owned and shown verbatim.
func Environment() []Entry {
	env := os.Environ()
	sort.Strings(env)

	out := make([]Entry, 0, len(env))
	for _, kv := range env {
		k, v, _ := strings.Cut(kv, "=")
		out = append(out, plain(k, v))
	}
	return out
}

func plain(key, value string) Entry {
	return Entry{Key: key, Value: redact.Value{Display: value}}
}
