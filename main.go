package main

import "github.com/webdevsha/solazyinvoice/cmd"

func main() {
	cmd.Execute()
}
