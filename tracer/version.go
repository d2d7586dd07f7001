package tracer

import "strconv"

// Tool version.
//
const (
	Major       = 3
	Minor       = 0
	Patch       = 2
	ReleaseName = "Nestor"
)

// DefaultDate is the $date written in VCD headers unless overridden with
// WithDate.
//
const DefaultDate = "December 8, 2014 14:15:00"

// Version returns the version string "major.minor.patch".
//
func Version() string {
	return strconv.Itoa(Major) + "." + strconv.Itoa(Minor) + "." + strconv.Itoa(Patch)
}
