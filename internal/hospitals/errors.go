package hospitals

import "errors"

// ErrHospitalNotFound is returned when no hospital matches the given id
var ErrHospitalNotFound = errors.New("hospital not found")
