package main

import "github.com/kvdiff-project/kvdiff/cmd"

func main() {
	cmd.Execute()
}
