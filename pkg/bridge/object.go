package bridge

import "time"

// Object returns a passthrough bridge that hands the value to the store's
// opaque object slot unchanged and reads it back with an unchecked type
// assertion. Whether a store can persist T is the store's concern; the
// bundled stores accept time.Time.
func Object[T any]() Bridge[T] { return Funcs[T]{} }

// Time returns the bridge for time.Time, stored in the object slot.
func Time() Bridge[time.Time] { return Object[time.Time]() }
