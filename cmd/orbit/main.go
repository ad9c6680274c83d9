// Package main provides the Orbit ML Framework CLI.
package main

import (
	"fmt"
	"os"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("Orbit ML Framework %s\n", version)
		return
	}

	fmt.Println("Orbit ML Framework - Machine Learning for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  go run ./examples/circles    Train a classifier on the circles dataset")
}
