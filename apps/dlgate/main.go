package main

import "github.com/airenamify/dlgate/apps/dlgate/cmd"

func main() {
	cmd.Execute()
}
