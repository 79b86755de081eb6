package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/mmech/complyboard/internal/complyboardcli"
)

func main() {
	if err := complyboardcli.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, complyboardcli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr)
			complyboardcli.PrintUsage(os.Stderr)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
