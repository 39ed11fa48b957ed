package main

import "github.com/stanhub/blog/cmd"

func main() {
	cmd.Execute()
}
