package main

import "knowledge-base/cmd/knowledge/commands"

func main() {
	commands.Execute()
}
