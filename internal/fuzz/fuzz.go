// Package fuzz holds a go-fuzz style entry point for Decode: given an
// arbitrary byte slice, it must never panic, only return an error or
// succeed. It is meant to be run by the legacy go-fuzz binary against the
// github.com/openbmc/libbej/internal/fuzz package.
package fuzz

import (
	"github.com/openbmc/libbej"
	"github.com/openbmc/libbej/internal/bejtest"
)

var fuzzDict *bej.Dictionary

func init() {
	d, err := bej.NewDictionary(bejtest.DummySimple())
	if err != nil {
		panic(err)
	}
	fuzzDict = d
}

// Fuzz is the legacy go-fuzz entry point: return 1 to mark the input as
// interesting for the corpus, 0 to skip it, -1 to reject it outright.
func Fuzz(data []byte) int {
	err := bej.Decode(data, bej.Dictionaries{Major: fuzzDict}, bej.DecodeCallbacks{}, bej.DecodeOptions{})
	if err != nil {
		return 0
	}
	return 1
}
