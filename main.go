package main

import "object-resolver/cmd"

func main() {
	cmd.Execute()
}
