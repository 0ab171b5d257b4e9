package main

import "github.com/rudransh-shrivastava/papercups/internal/cli"

func main() {
	cli.Execute()
}
