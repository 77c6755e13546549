package main

import (
	"fmt"
	"os"

	"fjacquet/cardmarket-lexoffice/cmd/process"
	"fjacquet/cardmarket-lexoffice/cmd/root"
)

func init() {
	root.Cmd.AddCommand(process.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
