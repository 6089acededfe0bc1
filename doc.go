// Package bej implements a bidirectional codec for the DMTF Redfish Device
// Enablement (RDE) Binary-Encoded JSON (BEJ) format, version 0xF1F0F000.
//
// Given a pair of compact binary dictionaries describing a Redfish schema (a
// major schema dictionary and a shared annotation dictionary), the codec
// converts between a tree of typed property nodes (Parent / leaf nodes, see
// tree.go) and a BEJ byte stream prefixed by a fixed 7-byte PLDM block
// header.
//
// The package covers the BEJ codec engine only: dictionary lookup, the
// SFLV (Sequence/Format/Length/Value) tuple layout, the two-pass
// size-accounting encoder, and the stack-driven non-recursive decoder.
// Building a property tree from application data, materialising decoded BEJ
// into textual JSON, and dictionary authoring/file I/O are the
// responsibility of callers.
package bej
