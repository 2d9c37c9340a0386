package book

//destructure:derive Destructure,Mutation,Ref
type Book struct {
	id       string
	name     string
	author   string
	revision int `destructure:"skip"`
}
