package campus

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Building is a named location on campus. Buildings are looked up by ShortName.
type Building struct {
	ShortName string
	LongName  string
	Location  orb.Point
}

func (b Building) String() string {
	return fmt.Sprintf("%v (%v) at %v", b.ShortName, b.LongName, b.Location)
}
