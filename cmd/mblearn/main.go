// SPDX-License-Identifier: MIT

// Command mblearn discovers Markov Blankets (and optionally the undirected
// skeleton) of the variables of a categorical CSV dataset.
//
//	mblearn discover --data samples.csv [--target A --target B] [--alpha 0.01]
//	mblearn skeleton --data samples.csv --policy union
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
