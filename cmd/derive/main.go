package main

import "martianoff/derive/cmd/derive/commands"

func main() {
	commands.Execute()
}
