package main

import "agency-console/internal/cli"

func main() {
	cli.Execute()
}
