package main

import "github.com/KaramelBytes/datefix-cli/cmd"

func main() {
	cmd.Execute()
}
