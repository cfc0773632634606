package models

// AttrState tags how an optional descriptor attribute was obtained.
type AttrState int

const (
	// AttrUnavailable means the provider call for this attribute failed
	// (access denied, throttled, wrong region, ...).
	AttrUnavailable AttrState = iota

	// AttrKnown means the value was retrieved and is authoritative.
	AttrKnown

	// AttrMalformed means the provider answered but the payload could not
	// be interpreted.
	AttrMalformed
)

func (s AttrState) String() string {
	switch s {
	case AttrUnavailable:
		return "unavailable"
	case AttrKnown:
		return "known"
	case AttrMalformed:
		return "malformed"
	default:
		return "invalid"
	}
}

// Attr is the result of fetching one optional attribute of a resource.
// The zero value is an unavailable attribute with no reason; collectors
// always use Known, Unavailable or Malformed.
//
// Evaluators must check OK before reading Value: an unavailable attribute
// is "could not verify", never "secure" or "insecure".
type Attr[T any] struct {
	Value  T         `json:"value"`
	State  AttrState `json:"state"`
	Reason string    `json:"reason,omitempty"`
}

// Known wraps a successfully fetched value.
func Known[T any](v T) Attr[T] {
	return Attr[T]{Value: v, State: AttrKnown}
}

// Unavailable marks an attribute whose fetch failed. err may be nil.
func Unavailable[T any](err error) Attr[T] {
	return Attr[T]{State: AttrUnavailable, Reason: reason(err)}
}

// Malformed marks an attribute whose response could not be interpreted.
func Malformed[T any](err error) Attr[T] {
	return Attr[T]{State: AttrMalformed, Reason: reason(err)}
}

// OK reports whether the attribute holds an authoritative value.
func (a Attr[T]) OK() bool { return a.State == AttrKnown }

func reason(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
