package main

import (
	"os"

	"github.com/thenoetrevino/hirepipe/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
