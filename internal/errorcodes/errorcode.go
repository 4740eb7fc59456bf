// Package errorcodes defines wrap service errors using a structured type.
// ServiceError holds the two-character status code carried on the wire and
// a human-readable description.
package errorcodes

// Predefined service error instances.
var (
	Err00 = ServiceError{"00", "No error"}
	Err15 = ServiceError{
		"15",
		"Invalid input data (invalid format, invalid characters, or not enough data provided)",
	}
	Err27 = ServiceError{"27", "Incompatible data length for algorithm"}
	Err33 = ServiceError{"33", "Invalid wrap header"}
	Err41 = ServiceError{"41", "Internal software error"}
	Err68 = ServiceError{"68", "Command unknown or disabled"}
	ErrA4 = ServiceError{"A4", "Wrapped key authentication failure"}
)

// ServiceError represents a wrap service error with its code and
// description.
type ServiceError struct {
	Code        string // two-character status code
	Description string // human-readable description
}

// Error implements the Go error interface: "<Code>: <Description>".
func (e ServiceError) Error() string {
	return e.Code + ": " + e.Description
}

// CodeOnly returns only the status code (e.g., "68"), for embedding in
// wire responses.
func (e ServiceError) CodeOnly() string {
	return e.Code
}
