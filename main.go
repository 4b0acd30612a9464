package main

import "github.com/devicelab-dev/tms-tool/pkg/cli"

func main() {
	cli.Execute()
}
