package schema

import (
	"fmt"
	"strings"
)

// JoinPath appends a field name to a root path, backtick-quoting names that
// contain a dot or start with a digit. An empty root yields the quoted name.
func JoinPath(root, name string) string {
	if root == "" {
		return QuoteFieldName(name)
	}

	return root + "." + QuoteFieldName(name)
}

// ParsePath splits a dotted path such as "va.info.AC" or "va.`AF.raw`" into
// its segments. Backtick-quoted segments are returned unquoted.
func ParsePath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrFieldNotFound)
	}

	var segments []string

	rest := path

	for {
		var seg string

		if strings.HasPrefix(rest, "`") {
			end := strings.IndexByte(rest[1:], '`')
			if end < 0 {
				return nil, fmt.Errorf("invalid path %q: unterminated quote", path)
			}

			seg, rest = rest[1:end+1], rest[end+2:]

			if rest != "" && rest[0] != '.' {
				return nil, fmt.Errorf("invalid path %q: text after quoted segment", path)
			}
		} else if i := strings.IndexByte(rest, '.'); i >= 0 {
			seg, rest = rest[:i], rest[i:]
		} else {
			seg, rest = rest, ""
		}

		if seg == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}

		segments = append(segments, seg)

		if rest == "" {
			return segments, nil
		}

		rest = rest[1:]
	}
}

// BaseName returns the unquoted last segment of path, or path itself when it
// does not parse.
func BaseName(path string) string {
	segments, err := ParsePath(path)
	if err != nil {
		return path
	}

	return segments[len(segments)-1]
}

// RelativePath strips root from path and returns the remaining segments.
// It fails when path is not under root.
func RelativePath(root, path string) ([]string, error) {
	if root == "" {
		return ParsePath(path)
	}

	if path == root {
		return nil, nil
	}

	rest, ok := strings.CutPrefix(path, root+".")
	if !ok {
		return nil, fmt.Errorf("path %q is not under root %q", path, root)
	}

	return ParsePath(rest)
}
