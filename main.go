package main

import "github.com/khushi-labs/marketwallet/cmd"

func main() {
	cmd.Execute()
}
