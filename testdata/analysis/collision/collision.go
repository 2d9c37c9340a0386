package collision

//destructure:derive Destructure
type Account struct {
	name string
	Name string // want `naming collision`
}

//destructure:derive Destructure
type Book struct { // want `naming collision`
	id string
}

type DestructBook struct{}
