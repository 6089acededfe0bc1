//go:build ignore

// This script only points at internal/bejtest, where the dictionary fixtures
// are built in code; it regenerates nothing, is not wired into any build or
// test, and exists as a record, in the spirit of the teacher's own
// testdata/generators scripts that document fixture provenance rather than
// regenerate binary fixtures at test time.
package main

import "fmt"

func main() {
	fmt.Println("see internal/bejtest for the fixtures this documents")
}
