package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "recommend":
		err = runRecommend(os.Args[2:])
	case "seed":
		err = runSeed(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "version":
		fmt.Println("nearby " + version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `nearby - destination catalog and recommendation tool

Usage:
  nearby recommend [flags]  Rank destinations for a coordinate
  nearby seed [flags]       Load a GeoJSON catalog into a SQLite database
  nearby export [flags]     Write the catalog of any source as GeoJSON
  nearby version            Show version

Run 'nearby <command> --help' for flags.
`)
}
