package utils

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RenderBlockDiff prints a line-oriented diff between the original and
// rewritten block, green for inserted lines and red for deleted ones.
func RenderBlockDiff(oldBlock string, newBlock string) {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldBlock+"\n", newBlock+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lineArray)

	for _, diff := range diffs {
		text := strings.TrimSuffix(diff.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			switch diff.Type {
			case diffmatchpatch.DiffInsert:
				fmt.Println("\x1b[92m+ " + line + "\x1b[0m")
			case diffmatchpatch.DiffDelete:
				fmt.Println("\x1b[91m- " + line + "\x1b[0m")
			default:
				fmt.Println("  " + line)
			}
		}
	}
}
