// Package main is the entry point for the meli-product-tracker server.
package main

import (
	"os"

	"github.com/donaldgifford/meli-product-tracker/cmd/meli-product-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
