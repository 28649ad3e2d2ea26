package main

import (
	"os"

	strandcmder "github.com/hivemesh/strand/cmd/strand"
)

func main() {
	cmd := strandcmder.NewStrandCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
