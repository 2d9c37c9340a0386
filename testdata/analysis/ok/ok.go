package ok

//destructure:derive Destructure,Mutation
type Point struct {
	x int
	y int
}

//destructure:derive Destructure,Ref
type Book struct {
	id     string
	name   string
	author string
}
