package main

import (
	"github.com/dmitryelj/SHA256-Benchmark/cmd/sha256bench/cmd"
)

func main() {
	cmd.Execute()
}
