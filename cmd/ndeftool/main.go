package main

import (
	"ndefkit/cmd/ndeftool/cmd"
)

func main() {
	cmd.Execute()
}
