package main

import "github.com/MrSnakeDoc/freenight/internal/cli"

func main() {
	cli.Execute()
}
