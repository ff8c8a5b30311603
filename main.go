package main

import "github.com/lepinkainen/tmdbkit/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
