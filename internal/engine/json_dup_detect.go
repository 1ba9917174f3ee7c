package engine

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// DuplicateStrictness controls duplicate key handling in detection helpers.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	pendingKey   string
	nextIndex    int
}

// DetectJSONDuplicateKeysBytes detects duplicate object keys from a JSON byte slice.
// If onDup is DupIgnore, no issues are produced. maxIssues < 0 means unlimited; 0 means disabled; >0 sets limit.
func DetectJSONDuplicateKeysBytes(data []byte, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	return DetectJSONDuplicateKeysReader(bytes.NewReader(data), onDup, maxIssues)
}

// DetectJSONDuplicateKeysReader detects duplicate object keys from an io.Reader.
// Note: this will consume the reader fully.
func DetectJSONDuplicateKeysReader(r io.Reader, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return detectJSONDuplicateKeys(dec, onDup, maxIssues)
}

func detectJSONDuplicateKeys(dec *json.Decoder, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	var issues []SimpleIssue
	var stack []dupFrame
	truncated := false

	appendIssue := func(i SimpleIssue) {
		if maxIssues == 0 || truncated {
			return
		}
		issues = append(issues, i)
		if maxIssues > 0 && len(issues) >= maxIssues {
			issues = append(issues, SimpleIssue{Code: "truncated", Path: "/", Message: "max issues reached"})
			truncated = true
		}
	}

	// childPath returns the pointer of the value about to be read in the top frame.
	childPath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := &stack[len(stack)-1]
		if top.kind == kindObject {
			return top.path + "/" + escape(top.pendingKey)
		}
		p := top.path + "/" + strconv.Itoa(top.nextIndex)
		top.nextIndex++
		return p
	}

	// valueDone flips the parent object back to key mode after a value.
	valueDone := func() {
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.kind == kindObject && !top.expectingKey {
				top.expectingKey = true
			}
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			appendIssue(SimpleIssue{Code: "parse_error", Path: "/", Message: err.Error()})
			break
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: childPath()})
			case '[':
				stack = append(stack, dupFrame{kind: kindArray, path: childPath()})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
					valueDone()
				}
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					if _, ok := top.keys[v]; ok {
						appendIssue(SimpleIssue{Code: "duplicate_key", Path: top.path + "/" + escape(v), Message: "key '" + v + "' duplicated"})
						if onDup == DupError {
							return issues, nil
						}
					}
					top.keys[v] = struct{}{}
					top.pendingKey = v
					top.expectingKey = false
					continue
				}
				if top.kind == kindArray {
					top.nextIndex++
				}
			}
			valueDone()
		default:
			if len(stack) > 0 && stack[len(stack)-1].kind == kindArray {
				stack[len(stack)-1].nextIndex++
			}
			valueDone()
		}
	}

	return issues, nil
}

func escape(k string) string {
	return strings.ReplaceAll(strings.ReplaceAll(k, "~", "~0"), "/", "~1")
}
