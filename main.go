package main

import "structure-manager/cmd"

func main() {
	cmd.Execute()
}
