package main

import "qcomposer/pkg/cmd"

func main() {
	cmd.Execute()
}
