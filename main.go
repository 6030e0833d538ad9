package main

import "mrowl-dungeon/cmd"

func main() {
	cmd.Execute()
}
