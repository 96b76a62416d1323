package main

import "github.com/NetSkoocKlim/storefront/cmd/storefront/commands"

func main() {
	commands.Execute()
}
