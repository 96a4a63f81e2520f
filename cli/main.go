package main

import "github.com/Factom-Asset-Tokens/fatgo/cli/cmd"

func main() {
	cmd.Execute()
}
