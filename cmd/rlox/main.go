package main

import (
	"os"

	"github.com/will14smith/rlox/cmd/rlox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
