package main

import "github.com/user/vid2gif-cli/cmd"

func main() {
	cmd.Execute()
}
