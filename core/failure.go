package core

import "fmt"

// Failure records an item a stage gave up on.
type Failure struct {
	PlaceID string
	Name    string
	Err     error
}

// Label names the item for log lines and reports.
func (f Failure) Label() string {
	switch {
	case f.Name != "" && f.PlaceID != "":
		return fmt.Sprintf("%s (%s)", f.Name, f.PlaceID)
	case f.Name != "":
		return f.Name
	case f.PlaceID != "":
		return f.PlaceID
	}
	return "Unknown Place"
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Label(), f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}
