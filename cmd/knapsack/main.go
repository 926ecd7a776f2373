// Command knapsack solves one 0/1 knapsack instance with branch-and-bound
// and with a genetic algorithm, then prints and records both results.
//
// Usage:
//
//	knapsack [flags] <input_file>
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
