package main

import "github.com/dimtools/armortrim/cmd"

func main() {
	cmd.Execute()
}
