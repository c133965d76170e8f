package main

import "github.com/kgzivf/blogbackend/cmd/blogctl/commands"

func main() {
	commands.Execute()
}
