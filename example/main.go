package main

import (
	"fmt"
	"time"
)

func main() {
	book := NewBook(
		"978-0134190440",
		"The Go Programming Language",
		"Alan A. A. Donovan",
		time.Date(2015, time.October, 26, 0, 0, 0, 0, time.UTC),
	)

	// Reconstruct consumes the value and rebuilds it with edited fields.
	book = book.Reconstruct(func(d *DestructBook) {
		d.Author = "Alan A. A. Donovan; Brian W. Kernighan"
	})

	// Substitute edits the value in place through pointers into its fields.
	book.Substitute(func(m BookMut) {
		*m.Name = *m.Name + " (1st ed.)"
	})

	ref := book.AsDestruct()
	fmt.Printf("%s by %s, published %s\n", *ref.Name, *ref.Author, ref.PublishedAt.Format("2006-01-02"))
}
