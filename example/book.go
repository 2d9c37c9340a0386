package main

import "time"

//go:generate go tool destructure

//destructure:derive Destructure,Mutation,Ref
type Book struct {
	id          string
	name        string
	publishedAt time.Time
	author      string
	revision    int `destructure:"skip"`
}

func NewBook(id, name, author string, publishedAt time.Time) Book {
	return Book{
		id:          id,
		name:        name,
		publishedAt: publishedAt,
		author:      author,
	}
}
