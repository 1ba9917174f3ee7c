package simplify

import "strings"

// IssueAt creates an Issue at the given JSON Pointer with provided code, message and params map.
// This is a convenience helper to improve readability at call sites with many parameters.
func IssueAt(path, code, msg string, params map[string]any) Issue {
	return Issue{Path: path, Code: code, Message: msg, Params: params}
}

// escapePointer escapes '~' -> '~0', '/' -> '~1' per RFC6901.
func escapePointer(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}

// joinPointer appends a reference token to a JSON Pointer.
func joinPointer(base, token string) string {
	if base == "" || base == "/" {
		return "/" + escapePointer(token)
	}
	return base + "/" + escapePointer(token)
}
