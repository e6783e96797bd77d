package main

import "unit-loader/cmd"

func main() {
	cmd.Execute()
}
