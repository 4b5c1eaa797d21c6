package main

import (
	"EchoMeta/cmd"
)

func main() {
	cmd.Execute()
}
