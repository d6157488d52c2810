package main

import "github.com/notargets/reactingflow/cmd"

func main() {
	cmd.Execute()
}
