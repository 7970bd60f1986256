package report

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"tracepage/src/fallback"
	"tracepage/src/trace"
)

const unprintable = "<unprintable>"

// Pointer addresses are disabled so two reports of the same failure are
// identical.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                5,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// FormatVariable pretty-prints a local binding.
func FormatVariable(v any) string {
	return fallback.Must(unprintable, func() string {
		if s, ok := v.(string); ok {
			return fmt.Sprintf("%q", s)
		}
		return strings.TrimRight(dumper.Sdump(v), "\n")
	})
}

// FormatValue renders a state or session value on one line.
func FormatValue(v any) string {
	return fallback.Must(unprintable, func() string {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%+v", v)
	})
}

// stdlib holds the first path element of every standard library package.
var stdlib = map[string]bool{
	"archive": true, "bufio": true, "bytes": true, "cmp": true, "compress": true,
	"container": true, "context": true, "crypto": true, "database": true, "debug": true,
	"embed": true, "encoding": true, "errors": true, "expvar": true, "flag": true,
	"fmt": true, "go": true, "hash": true, "html": true, "image": true, "index": true,
	"internal": true, "io": true, "iter": true, "log": true, "maps": true, "math": true,
	"mime": true, "net": true, "os": true, "path": true, "plugin": true, "reflect": true,
	"regexp": true, "runtime": true, "slices": true, "sort": true, "strconv": true,
	"strings": true, "structs": true, "sync": true, "syscall": true, "testing": true,
	"text": true, "time": true, "unicode": true, "unique": true, "unsafe": true,
	"vendor": true,
}

// QualifiedName names the error's type as "import/path.Type". Standard
// library types keep only their package name and predeclared types their
// bare name. For a recovered panic the panic value's type is named.
func QualifiedName(err error) string {
	return fallback.Must(unprintable, func() string { return qualifiedName(err) })
}

func qualifiedName(err error) string {
	var v any = err
	if p, ok := err.(*trace.PanicError); ok {
		v = p.PanicValue()
	}

	t := reflect.TypeOf(v)
	if t == nil {
		return "nil"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name, pkg := t.Name(), t.PkgPath()
	switch {
	case name == "":
		return t.String()
	case pkg == "":
		return name
	case stdlib[strings.SplitN(pkg, "/", 2)[0]]:
		return t.String()
	}
	return pkg + "." + name
}

// Message returns the error's own message, "" rendered as `""`.
func Message(err error) string {
	msg := fallback.Must("", func() string {
		if m, ok := err.(trace.Messager); ok {
			return m.Message()
		}
		return err.Error()
	})
	if msg == "" {
		return `""`
	}
	return msg
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
