package main

import "github.com/pkgforge/reciplib/cmd/recipetool/command"

func main() {
	command.Execute()
}
