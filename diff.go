package jsondoc

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp tells whether a diff line is shared, removed or added.
type DiffOp int8

const (
	DiffEqual  DiffOp = 0
	DiffDelete DiffOp = -1
	DiffInsert DiffOp = 1
)

func (op DiffOp) String() string {
	switch op {
	case DiffDelete:
		return "-"
	case DiffInsert:
		return "+"
	default:
		return " "
	}
}

// DiffLine is one line of the pretty printed form of either document.
type DiffLine struct {
	Op   DiffOp
	Text string
}

func (l DiffLine) String() string {
	return l.Op.String() + " " + l.Text
}

// Diff compares the pretty printed serializations of a and b line by line.
// Structurally equal documents with identical key order produce only
// DiffEqual lines.
func Diff(a, b *Value) ([]DiffLine, error) {
	from, err := a.ToString(WritePrettyTwoSpaces | WriteAllowInfAndNaN)
	if err != nil {
		return nil, err
	}
	to, err := b.ToString(WritePrettyTwoSpaces | WriteAllowInfAndNaN)
	if err != nil {
		return nil, err
	}

	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(from+"\n", to+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		var op DiffOp
		switch d.Type {
		case diffpatch.DiffDelete:
			op = DiffDelete
		case diffpatch.DiffInsert:
			op = DiffInsert
		default:
			op = DiffEqual
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out, nil
}

// Changed reports whether any line differs.
func Changed(lines []DiffLine) bool {
	for _, l := range lines {
		if l.Op != DiffEqual {
			return true
		}
	}
	return false
}
