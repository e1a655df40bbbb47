// Command dcsbm partitions reference graphs with the degree-corrected
// stochastic block model search.
//
//	dcsbm run --graph karate --groups 2 --trials 5 --seed 42 > karate.txt
//	dcsbm score --graph karate --groups 2 < karate.txt
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
