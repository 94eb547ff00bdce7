// Package jsondoc provides JSON documents that many independently closed
// Values can share and edit in place.
//
// A Document is one JSON tree, either immutable (produced by parsing, stored
// in a flat arena) or mutable (a node tree that supports insert, replace,
// remove and rename). A Value addresses one node of a Document. Navigating
// from a Value (Get, At, PtrGet, iteration) yields new Values sharing the
// same Document, so an edit through one is visible through all of them. The
// Document is released when the last Value sharing it is closed.
//
// Basic usage:
//
//	p := jsondoc.New()
//	defer p.Close()
//
//	doc, err := p.Parse(`{"user":{"name":"Ann","tags":["a"]}}`, &jsondoc.ParseOptions{Mutable: true})
//	if err != nil {
//		return err
//	}
//	defer doc.Close()
//
//	tags, _ := doc.PtrGet("/user/tags")
//	defer tags.Close()
//	tags.AppendString("b") // doc now holds ["a","b"]
//
//	out, _ := doc.ToString(jsondoc.WritePretty)
//
// Inserting a Value that is already attached somewhere, or that belongs to
// another Document, inserts a deep copy, so a node never has two parents and
// Documents never reference each other.
//
// # Pointers
//
// PtrGet, PtrSet, PtrAdd, PtrRemove and the PtrTryGet family address nodes
// with RFC 6901 JSON Pointers relative to the receiving Value. Writes create
// missing parents by default and validate the whole path before changing
// anything.
//
// # Handles
//
// Processor.Open binds a Value to an opaque Handle issued by a HandleSystem.
// Destroying the handle closes the Value; closing the Processor destroys
// every handle it issued.
//
// # Concurrency
//
// A Processor is safe for concurrent use. An immutable Document may be
// read from several goroutines at once, each closing the Values it
// created. Mutable Documents must be used from one goroutine at a time.
package jsondoc
