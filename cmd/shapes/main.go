// Command shapes computes shape results from the command line using the same
// validation and formulas as the HTTP API.
//
// Usage:
//
//	shapes circle --radius 2
//	shapes rectangle --length 3 --width 4
//	shapes triangle --base 5 --height 10
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
