package main

import (
	"github.com/AeroX2/wordmarket/internal/cli"
)

func main() {
	cli.Execute()
}
