package main

import "github.com/brooksandrew/catan-spectator/cmd"

func main() {
	cmd.Execute()
}
