package main

import "github.com/dmitrijs2005/notedrive/internal/client/cli"

func main() {
	cli.Execute()
}
