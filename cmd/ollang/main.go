package main

import "github.com/funvibe/ollang/pkg/cli"

func main() {
	cli.Execute()
}
