package main

import "itree-extract/cmd"

func main() {
	cmd.Execute()
}
