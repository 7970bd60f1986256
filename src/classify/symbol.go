package classify

import (
	"strings"
)

// splitFunction splits a runtime function name into its import path and the
// symbol part: "net/http.(*conn).serve" -> "net/http", "(*conn).serve".
func splitFunction(function string) (pkgPath, rest string, ok bool) {
	function = strings.ReplaceAll(function, "[...]", "")
	if function == "" {
		return "", "", false
	}

	slash := strings.LastIndex(function, "/")
	dot := strings.Index(function[slash+1:], ".")
	if dot < 0 {
		return "", function, true
	}
	dot += slash + 1
	// The runtime escapes dots in the last path element, e.g. "yaml%2ev3".
	return strings.ReplaceAll(function[:dot], "%2e", "."), function[dot+1:], true
}

// Symbol renders "Type.Method" for methods and the bare name for functions.
// Closures keep their compiler suffix, e.g. "handler.func1".
func Symbol(function string) string {
	_, rest, ok := splitFunction(function)
	if !ok || rest == "" {
		return UnknownSymbol
	}
	if !strings.HasPrefix(rest, "(") {
		return rest
	}

	end := strings.Index(rest, ")")
	if end < 0 || end+2 > len(rest) || rest[end+1] != '.' {
		return UnknownSymbol
	}
	receiver := strings.TrimPrefix(rest[1:end], "*")
	if receiver == "" {
		return UnknownSymbol
	}
	return receiver + "." + rest[end+2:]
}

// PackageName returns the top-level segment of the function's import path:
// the first element for standard library paths, the repository name for
// host-qualified paths.
func PackageName(function string) string {
	pkgPath, _, ok := splitFunction(function)
	if !ok || pkgPath == "" {
		return ""
	}

	parts := strings.Split(pkgPath, "/")
	if !strings.Contains(parts[0], ".") {
		return parts[0]
	}
	if len(parts) > 2 {
		return parts[2]
	}
	return parts[len(parts)-1]
}
