package main

import "github.com/osse101/CraftCalc_Go/internal/cli"

func main() {
	cli.Execute()
}
