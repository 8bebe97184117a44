package main

import "github.com/josephlewis42/lish/cmd"

func main() {
	cmd.Execute()
}
