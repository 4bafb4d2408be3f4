package main

import "github.com/KaramelBytes/spendloom-cli/cmd"

func main() {
	cmd.Execute()
}
