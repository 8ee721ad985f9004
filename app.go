package main

import "chartrender/cmd"

func main() {
	cmd.Execute()
}
