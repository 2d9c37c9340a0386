package imported

import "time"

//destructure:derive Destructure
type Event struct {
	at   time.Time
	name string
}
