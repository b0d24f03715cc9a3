package main

import "descriptor-sync/cmd"

func main() {
	cmd.Execute()
}
