package leveldata

import "fmt"

// MapLoadError reports a map resource that is missing or malformed. Nothing
// from a failed load is ever handed to the caller.
type MapLoadError struct {
	MapID int
	Path  string
	Err   error
}

func (e *MapLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("leveldata: map %d: %v", e.MapID, e.Err)
	}
	return fmt.Sprintf("leveldata: map %d (%s): %v", e.MapID, e.Path, e.Err)
}

func (e *MapLoadError) Unwrap() error { return e.Err }

// MalformedWarpTokenError is a warp destination that is neither an integer
// map id nor the same-map sentinel "n". It always arrives wrapped in a
// MapLoadError.
type MalformedWarpTokenError struct {
	MapID int
	Field string
	Token string
}

func (e *MalformedWarpTokenError) Error() string {
	return fmt.Sprintf("%s: malformed warp token %q", e.Field, e.Token)
}
