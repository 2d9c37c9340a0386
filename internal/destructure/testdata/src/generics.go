package generics

//destructure:derive Destructure,Mutation
type Domain[A any, B any] struct {
	a A
	b B
}
