package main

import "nextstep/cmd"

func main() {
	cmd.Execute()
}
