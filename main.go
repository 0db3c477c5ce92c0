package main

import "github.com/agentic-research/carve/cmd"

func main() {
	cmd.Execute()
}
