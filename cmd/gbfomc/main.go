package main

import "github.com/pfrederiksen/gbfomc/internal/cli"

func main() {
	cli.Execute()
}
