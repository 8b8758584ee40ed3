package spec

import "strings"

// rawStatement is one comment-stripped statement together with its position
// in the original input.
type rawStatement struct {
	text   string
	line   int // 1-based line number
	column int // 1-based column of the first character of text
}

// stripComment removes an end-of-line comment from a physical line.
// Comments may be introduced with '#', '%' or "//".
func stripComment(line string) string {
	cut := len(line)
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '#', '%':
			if i < cut {
				cut = i
			}
			return line[:cut]
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return line[:i]
			}
		}
	}
	return line[:cut]
}

// splitStatements splits the input into raw statements. Statements are
// separated by newlines; a semicolon acts as an additional statement
// delimiter within a line. Blank statements are dropped.
func splitStatements(input string) []rawStatement {
	var out []rawStatement

	lines := strings.Split(input, "\n")
	for i, physical := range lines {
		lineNo := i + 1
		content := stripComment(strings.TrimSuffix(physical, "\r"))

		offset := 0
		for _, part := range strings.Split(content, ";") {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				column := offset + strings.Index(part, trimmed[:1]) + 1
				out = append(out, rawStatement{text: trimmed, line: lineNo, column: column})
			}
			offset += len(part) + 1
		}
	}

	return out
}
