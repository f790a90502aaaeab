package main

import "github.com/atdiar/extender/cmd/popupdemo/cmd"

func main() {
	cmd.Execute()
}
