package main

import "github.com/eventpilot/backend/commands"

func main() {
	commands.Execute()
}
