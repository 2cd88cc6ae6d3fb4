package rewriter

import (
	"strings"
)

// extractFencedCode splits a model reply into the contents of its first
// fenced code region and the surrounding text. The fence language tag is
// ignored. When the reply carries no fence at all, the whole body is treated
// as code and the explanation is empty. A fence left open runs to the end of
// the reply.
func extractFencedCode(reply string) (code string, explanation string) {
	lines := strings.Split(reply, "\n")

	var codeLines []string
	var explanationLines []string
	insideCodeBlock := false
	fenceSeen := false

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		if strings.HasPrefix(trimmedLine, "```") {
			if insideCodeBlock {
				insideCodeBlock = false
			} else if !fenceSeen {
				insideCodeBlock = true
				fenceSeen = true
			}
			// Fences after the first region belong to the explanation text,
			// but the markers themselves are never kept.
			continue
		}

		if insideCodeBlock {
			codeLines = append(codeLines, line)
		} else {
			explanationLines = append(explanationLines, line)
		}
	}

	if !fenceSeen {
		return reply, ""
	}

	return strings.Join(codeLines, "\n"), strings.TrimSpace(strings.Join(explanationLines, "\n"))
}
