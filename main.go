package main

import "github.com/princinho/stonevitrine/cmd"

func main() {
	cmd.Execute()
}
