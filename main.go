package main

import (
	"github.com/sidkik/overlaysync/cmd"
	"github.com/sidkik/overlaysync/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
