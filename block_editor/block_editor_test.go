package block_editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nestedSource = `package main

func classify(n int) string {
	if n > 0 {
		if n > 100 {
			if n > 1000 {
				return "huge"
			}
			return "big"
		}
		return "small"
	}
	return "non-positive"
}
`

// Test extracting the block reported at a nested conditional
func TestExtractBlock_NestedConditional(t *testing.T) {
	editor := NewBlockEditor()

	// Line 4 is the outer `if n > 0 {`.
	block := editor.ExtractBlock(nestedSource, 4)
	require.NotEmpty(t, block)

	assert.True(t, strings.HasPrefix(block, "\tif n > 0 {"))
	assert.True(t, strings.HasSuffix(block, "\t}"))
	assert.Contains(t, block, `return "huge"`)
	assert.Contains(t, block, `return "small"`)
	assert.NotContains(t, block, `return "non-positive"`)
}

// Test that a diagnostic on the function line captures the whole function
func TestExtractBlock_WholeFunction(t *testing.T) {
	editor := NewBlockEditor()

	block := editor.ExtractBlock(nestedSource, 3)
	require.NotEmpty(t, block)

	assert.True(t, strings.HasPrefix(block, "func classify"))
	assert.Contains(t, block, `return "non-positive"`)
	assert.Equal(t, 12, len(strings.Split(block, "\n")))
}

// Test that extraction stops at the outer closing brace, not the inner one
func TestExtractBlock_StopsAtOuterClose(t *testing.T) {
	editor := NewBlockEditor()
	source := "package demo\nfunc check(a, b bool) string {\n\tif a {\n\t\tif b {\n\t\t\treturn \"ab\"\n\t\t}\n\t}\n\treturn \"none\"\n}\n"

	// Diagnostic at line 3, inner block closing before the outer one at line 7.
	block := editor.ExtractBlock(source, 3)
	assert.Equal(t, "\tif a {\n\t\tif b {\n\t\t\treturn \"ab\"\n\t\t}\n\t}", block)
	assert.Equal(t, 5, len(strings.Split(block, "\n")))
}

// Test that a block opening and closing on one line is returned as that line
func TestExtractBlock_SingleLineBalanced(t *testing.T) {
	editor := NewBlockEditor()
	source := "package main\n\nfunc noop() { return }\n"

	block := editor.ExtractBlock(source, 3)
	assert.Equal(t, "func noop() { return }", block)
}

// Test that lines before the first opening brace are carried into the block
func TestExtractBlock_OpensOnLaterLine(t *testing.T) {
	editor := NewBlockEditor()
	source := "first := compute()\nif first != nil &&\n\tsecond != nil {\n\thandle()\n}\n"

	block := editor.ExtractBlock(source, 2)
	assert.Equal(t, "if first != nil &&\n\tsecond != nil {\n\thandle()\n}", block)
}

// Test start lines outside the file
func TestExtractBlock_StartLineOutOfRange(t *testing.T) {
	editor := NewBlockEditor()

	assert.Equal(t, "", editor.ExtractBlock(nestedSource, 0))
	assert.Equal(t, "", editor.ExtractBlock(nestedSource, -3))
	assert.Equal(t, "", editor.ExtractBlock(nestedSource, 1000))
}

// Test that a block left open at end of input yields nothing
func TestExtractBlock_UnbalancedAtEOF(t *testing.T) {
	editor := NewBlockEditor()
	source := "func broken() {\n\tif x {\n\t\tcall()\n"

	assert.Equal(t, "", editor.ExtractBlock(source, 1))
	assert.Equal(t, "", editor.ExtractBlock(source, 2))
}

// Test that input with no opening brace at all yields nothing
func TestExtractBlock_NeverOpens(t *testing.T) {
	editor := NewBlockEditor()
	source := "x := 1\ny := 2\nz := x + y\n"

	assert.Equal(t, "", editor.ExtractBlock(source, 1))
}

// Test replacing only the first occurrence of a repeated block
func TestReplaceFirstBlock_FirstOccurrenceOnly(t *testing.T) {
	editor := NewBlockEditor()
	source := "aaa\nif x {\n\ty()\n}\nbbb\nif x {\n\ty()\n}\nccc\n"
	oldBlock := "if x {\n\ty()\n}"
	newBlock := "if !x {\n\treturn\n}\ny()"

	patched, ok := editor.ReplaceFirstBlock(source, oldBlock, newBlock)
	require.True(t, ok)

	assert.Equal(t, 1, strings.Count(patched, newBlock))
	assert.Equal(t, 1, strings.Count(patched, oldBlock))
	assert.Less(t, strings.Index(patched, newBlock), strings.Index(patched, oldBlock))
}

// Test that a block missing from the source leaves it untouched
func TestReplaceFirstBlock_MissingBlock(t *testing.T) {
	editor := NewBlockEditor()
	source := "func main() {}\n"

	patched, ok := editor.ReplaceFirstBlock(source, "if gone {\n}", "anything")
	assert.False(t, ok)
	assert.Equal(t, source, patched)
}

// Test that an empty search block never matches
func TestReplaceFirstBlock_EmptyOldBlock(t *testing.T) {
	editor := NewBlockEditor()
	source := "func main() {}\n"

	patched, ok := editor.ReplaceFirstBlock(source, "", "injected")
	assert.False(t, ok)
	assert.Equal(t, source, patched)
}

// Test that replacing a block with identical text succeeds without changes
func TestReplaceFirstBlock_IdenticalReplacement(t *testing.T) {
	editor := NewBlockEditor()
	source := "before\nif x {\n\ty()\n}\nafter\n"
	block := "if x {\n\ty()\n}"

	patched, ok := editor.ReplaceFirstBlock(source, block, block)
	assert.True(t, ok)
	assert.Equal(t, source, patched)
}
