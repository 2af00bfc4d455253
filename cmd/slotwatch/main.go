package main

import "github.com/example/slotwatch/internal/interfaces/cli"

func main() {
	cli.Execute()
}
