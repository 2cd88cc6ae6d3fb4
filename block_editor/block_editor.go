package block_editor

import (
	"strings"

	"github.com/bentito/lintfixLLM/block_editor/contracts"
)

// BlockEditor implements brace-counting block extraction and first-occurrence
// patching. The extraction is purely textual: braces inside string literals
// or comments count too. That inaccuracy is accepted; a missed block only
// means the diagnostic is skipped.
type BlockEditor struct{}

// NewBlockEditor initializes a new block editor.
func NewBlockEditor() contracts.IBlockEditor {
	return &BlockEditor{}
}

// ExtractBlock returns the minimal balanced-brace block starting at the
// 1-based startLine, including the closing line. It returns "" when startLine
// is out of range, when no opening brace ever appears, or when the block is
// still open at end of input.
func (editor *BlockEditor) ExtractBlock(source string, startLine int) string {
	lines := strings.Split(source, "\n")
	if startLine < 1 || startLine > len(lines) {
		return ""
	}

	var blockLines []string
	depth := 0
	opened := false

	for i := startLine - 1; i < len(lines); i++ {
		line := lines[i]
		blockLines = append(blockLines, line)

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if strings.Contains(line, "{") {
			opened = true
		}

		if opened && depth <= 0 {
			return strings.Join(blockLines, "\n")
		}
	}

	return ""
}

// ReplaceFirstBlock replaces the first exact occurrence of oldBlock with
// newBlock. When oldBlock is absent the source comes back unchanged and the
// bool is false. Equal old and new text is a successful no-op.
func (editor *BlockEditor) ReplaceFirstBlock(source string, oldBlock string, newBlock string) (string, bool) {
	if oldBlock == "" {
		return source, false
	}

	index := strings.Index(source, oldBlock)
	if index < 0 {
		return source, false
	}

	return source[:index] + newBlock + source[index+len(oldBlock):], true
}
