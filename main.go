package main

import "github.com/gaurav-prasanna/seoprobe/cmd"

func main() {
	cmd.Execute()
}
