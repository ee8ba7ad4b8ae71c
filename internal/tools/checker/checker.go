// Package checker provides a small framework for running named validation
// checks and aggregating their failures.
package checker

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
)

// Validator holds an ordered list of named checks.
type Validator struct {
	checks []ValidatorCheck
	out    io.Writer // progress messages, nil suppresses them
}

// ValidatorCheck pairs a human readable name with the function that performs
// the check. Use closures to capture the context of the check, such as the
// library path or other parameters.
type ValidatorCheck struct {
	name string
	f    ValidateFunc
}

// NewValidatorCheck creates a new ValidatorCheck with the given name and function.
func NewValidatorCheck(name string, f ValidateFunc) ValidatorCheck {
	return ValidatorCheck{
		name: name,
		f:    f,
	}
}

// ValidateFunc is a function type that returns an error if the validation fails.
type ValidateFunc func() error

// NewValidator creates a new Validator with the given checks.
// Progress is written to stdout.
func NewValidator(c ...ValidatorCheck) Validator {
	return Validator{
		checks: c,
		out:    os.Stdout,
	}
}

// NewValidatorQuiet creates a new Validator with the given checks that emits
// no progress messages.
func NewValidatorQuiet(c ...ValidatorCheck) Validator {
	return Validator{
		checks: c,
	}
}

// AddChecks returns a Validator with the additional checks appended.
func (v Validator) AddChecks(c ...ValidatorCheck) Validator {
	v.checks = append(v.checks, c...)
	return v
}

// Validate runs the checks in order and returns the aggregated failures,
// each annotated with the name of the check that produced it.
// All checks run, a failing check does not stop the rest.
func (v Validator) Validate() error {
	var errs error

	for _, c := range v.checks {
		if v.out != nil {
			fmt.Fprintf(v.out, "==> Starting check: %s\n", c.name)
		}

		if err := c.f(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", c.name, err))
		}

		if v.out != nil {
			fmt.Fprintf(v.out, "==> Finished check: %s\n", c.name)
		}
	}

	return errs
}
