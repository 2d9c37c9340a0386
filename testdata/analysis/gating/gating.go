package gating

//destructure:derive Mutation
type Draft struct { // want `missing Destructure capability`
	body string
}

//destructure:derive Ref
type Page struct { // want `missing Destructure capability`
	body string
}
