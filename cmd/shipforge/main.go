package main

import (
	"github.com/andrescamacho/shipforge/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
