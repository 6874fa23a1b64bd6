package main

import "github.com/alexiusacademia/gofluid/cmd"

func main() {
	cmd.Execute()
}
