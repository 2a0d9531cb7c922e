package main

import "github.com/backbone81/walkv/cmd/kv-cli/cmd"

func main() {
	cmd.Execute()
}
