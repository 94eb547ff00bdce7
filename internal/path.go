package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// PathSegmentType distinguishes the segments of a dot path.
type PathSegmentType int

const (
	PropertySegment PathSegmentType = iota
	ArrayIndexSegment
)

func (pst PathSegmentType) String() string {
	switch pst {
	case PropertySegment:
		return "property"
	case ArrayIndexSegment:
		return "array"
	default:
		return "unknown"
	}
}

// PathSegment represents a single segment of a dot path such as
// "users[0].name". Negative indices count from the end of the array.
type PathSegment struct {
	Type  PathSegmentType
	Key   string
	Index int
}

func (ps PathSegment) String() string {
	if ps.Type == ArrayIndexSegment {
		return "[" + strconv.Itoa(ps.Index) + "]"
	}
	return ps.Key
}

// ParsePath parses dot notation paths like "user.name" or "users[0].name".
// A bare numeric part ("items.0") is an array index as well.
func ParsePath(path string) ([]PathSegment, error) {
	if path == "" {
		return []PathSegment{}, nil
	}
	parts, err := smartSplitPath(path)
	if err != nil {
		return nil, err
	}
	segments := make([]PathSegment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("empty segment in path '%s'", path)
		}
		if strings.Contains(part, "[") {
			propSegments, err := parsePropertyWithArray(part)
			if err != nil {
				return nil, fmt.Errorf("invalid array access in '%s': %w", part, err)
			}
			segments = append(segments, propSegments...)
			continue
		}
		if index, err := strconv.Atoi(part); err == nil {
			segments = append(segments, PathSegment{Type: ArrayIndexSegment, Index: index})
			continue
		}
		segments = append(segments, PathSegment{Type: PropertySegment, Key: part})
	}
	return segments, nil
}

// smartSplitPath splits path by dots outside brackets.
func smartSplitPath(path string) ([]string, error) {
	if !strings.Contains(path, "[") {
		return strings.Split(path, "."), nil
	}
	parts := make([]string, 0, strings.Count(path, ".")+1)
	start := 0
	depth := 0
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ']' at offset %d", i)
			}
		case '.':
			if depth == 0 {
				parts = append(parts, path[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("missing closing bracket in '%s'", path)
	}
	return append(parts, path[start:]), nil
}

// parsePropertyWithArray parses property access with array notation like
// "users[0]" or "matrix[1][2]".
func parsePropertyWithArray(part string) ([]PathSegment, error) {
	var segments []PathSegment

	bracketIndex := strings.Index(part, "[")
	if bracketIndex > 0 {
		segments = append(segments, PathSegment{Type: PropertySegment, Key: part[:bracketIndex]})
	}

	remaining := part[bracketIndex:]
	for len(remaining) > 0 {
		if !strings.HasPrefix(remaining, "[") {
			return nil, fmt.Errorf("expected '[' but found '%s'", remaining)
		}
		closeBracket := strings.Index(remaining, "]")
		if closeBracket == -1 {
			return nil, fmt.Errorf("missing closing bracket in '%s'", remaining)
		}
		index, err := strconv.Atoi(remaining[1:closeBracket])
		if err != nil {
			return nil, fmt.Errorf("invalid array index '%s'", remaining[1:closeBracket])
		}
		segments = append(segments, PathSegment{Type: ArrayIndexSegment, Index: index})
		remaining = remaining[closeBracket+1:]
	}
	return segments, nil
}

// WalkPath resolves segments from root. It returns the resolved node, or the
// index of the first segment that did not resolve.
func WalkPath(root Node, segments []PathSegment) (Node, int) {
	cur := root
	for i, seg := range segments {
		switch seg.Type {
		case PropertySegment:
			next, ok := cur.Get(seg.Key)
			if !ok {
				return nil, i
			}
			cur = next
		case ArrayIndexSegment:
			if cur.Kind() != KindArray {
				return nil, i
			}
			idx := seg.Index
			if idx < 0 {
				idx += cur.Len()
			}
			if idx < 0 || idx >= cur.Len() {
				return nil, i
			}
			cur = cur.Index(idx)
		}
	}
	return cur, -1
}
