package insitu

import "github.com/hashicorp/go-multierror"

// Report collects the recoverable problems of a conversion: arrays that
// were skipped and shapes that could not be labelled. A conversion that
// returns a nil error may still carry warnings.
type Report struct {
	warnings *multierror.Error
}

func (r *Report) warn(err error) {
	r.warnings = multierror.Append(r.warnings, err)
}

// Warnings returns every recorded warning as one error, or nil.
// errors.Is matches the individual warnings.
func (r *Report) Warnings() error {
	if r == nil {
		return nil
	}
	return r.warnings.ErrorOrNil()
}

// Len returns the number of warnings.
func (r *Report) Len() int {
	if r == nil || r.warnings == nil {
		return 0
	}
	return len(r.warnings.Errors)
}
