package main

import (
	"github.com/bentito/lintfixLLM/cmd"
)

func main() {
	cmd.Execute()
}
