package main

import "github.com/kamusis/mvx-cli/cmd"

func main() {
	cmd.Execute()
}
