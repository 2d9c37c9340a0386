package shape

//destructure:derive Destructure
type Alias int // want `unsupported shape`

//destructure:derive Destructure
type Mixed struct {
	error // want `unsupported shape`
	id    string
}
