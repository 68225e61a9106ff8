package main

import "github.com/joelspa/Katze/internal/cli"

func main() {
	cli.Execute()
}
