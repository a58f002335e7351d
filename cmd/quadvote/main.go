package main

import (
	"quadvote.io/quadvote/cmd/quadvote/cmd"
)

func main() {
	cmd.Execute()
}
