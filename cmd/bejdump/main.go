// Command bejdump decodes a BEJ stream and prints its structure as indented
// text. With no -in flag it decodes a small built-in fixture so the tool has
// something to show without requiring an on-disk dictionary file format,
// which this codec does not define.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/openbmc/libbej"
	"github.com/openbmc/libbej/internal/bejtest"
)

func main() {
	inPath := flag.String("in", "", "path to a BEJ-encoded file (defaults to a built-in fixture)")
	flag.Parse()

	dict, err := bej.NewDictionary(bejtest.DummySimple())
	if err != nil {
		log.Fatalf("bejdump: building fixture dictionary: %v", err)
	}

	var block []byte
	if *inPath == "" {
		root := bej.NewSet("", 0)
		root.LinkChild(bej.NewInteger("Identifier", 0, 1))
		root.LinkChild(bej.NewString("Name", 1, "ExampleResource"))
		block, err = bej.Encode(root, bej.Dictionaries{Major: dict}, bej.EncodeOptions{})
		if err != nil {
			log.Fatalf("bejdump: encoding fixture: %v", err)
		}
	} else {
		block, err = os.ReadFile(*inPath)
		if err != nil {
			log.Fatalf("bejdump: reading %s: %v", *inPath, err)
		}
	}

	depth := 0
	indent := func() string {
		s := ""
		for i := 0; i < depth; i++ {
			s += "  "
		}
		return s
	}

	cb := bej.DecodeCallbacks{
		SetStart: func(name string, annotated bool) {
			fmt.Printf("%s%s: {\n", indent(), name)
			depth++
		},
		SetEnd: func() {
			depth--
			fmt.Printf("%s}\n", indent())
		},
		ArrayStart: func(name string, annotated bool) {
			fmt.Printf("%s%s: [\n", indent(), name)
			depth++
		},
		ArrayEnd: func() {
			depth--
			fmt.Printf("%s]\n", indent())
		},
		Integer: func(name string, v int64, annotated bool) {
			fmt.Printf("%s%s: %d\n", indent(), name, v)
		},
		String: func(name string, v string, annotated bool) {
			fmt.Printf("%s%s: %q\n", indent(), name, v)
		},
		Real: func(name string, v float64, annotated bool) {
			fmt.Printf("%s%s: %g\n", indent(), name, v)
		},
		Bool: func(name string, v bool, annotated bool) {
			fmt.Printf("%s%s: %t\n", indent(), name, v)
		},
		Null: func(name string, annotated bool) {
			fmt.Printf("%s%s: null\n", indent(), name)
		},
	}

	if err := bej.Decode(block, bej.Dictionaries{Major: dict}, cb, bej.DecodeOptions{}); err != nil {
		log.Fatalf("bejdump: decoding: %v", err)
	}
}
