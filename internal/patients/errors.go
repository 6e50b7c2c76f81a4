package patients

import "errors"

// ErrPatientNotFound is returned when no patient matches the identifier
// within the requested hospital
var ErrPatientNotFound = errors.New("patient not found")
