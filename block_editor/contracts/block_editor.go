package contracts

// IBlockEditor extracts and patches brace-delimited blocks in source text.
type IBlockEditor interface {
	ExtractBlock(source string, startLine int) string
	ReplaceFirstBlock(source string, oldBlock string, newBlock string) (string, bool)
}
