package main

import "kamicanvas/internal/cli"

func main() {
	cli.Execute()
}
