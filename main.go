package main

import "github.com/mbaylis/pomo-cli/cmd"

func main() {
	cmd.Execute()
}
