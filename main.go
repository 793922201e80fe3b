package main

import "github.com/peilonrayz/underlords/cmd"

func main() {
	cmd.Execute()
}
