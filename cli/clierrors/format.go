// Package clierrors formats compile errors for the command line.
package clierrors

import (
	"errors"
	"fmt"

	"github.com/brimdata/serql/compiler"
	"github.com/brimdata/serql/compiler/semantic"
	"go.uber.org/multierr"
)

// Format prefixes each error in err with the name of the input it came
// from and a category.  A MalformedQueryError is the user's to fix while
// an InvariantError is a bug in the compiler.
func Format(name string, err error) error {
	if err == nil {
		return nil
	}
	var errs []error
	for _, err := range multierr.Errors(err) {
		errs = append(errs, formatOne(name, err))
	}
	return multierr.Combine(errs...)
}

// FormatAll is like Format for the error returned by CompileAll.  Each
// *compiler.QueryError is prefixed with names[Index] in place of its
// query number.
func FormatAll(names []string, err error) error {
	if err == nil {
		return nil
	}
	var errs []error
	for _, err := range multierr.Errors(err) {
		var name string
		var qe *compiler.QueryError
		if errors.As(err, &qe) && qe.Index < len(names) {
			name, err = names[qe.Index], qe.Err
		}
		errs = append(errs, formatOne(name, err))
	}
	return multierr.Combine(errs...)
}

func formatOne(name string, err error) error {
	prefix := ""
	if name != "" {
		prefix = name + ": "
	}
	switch {
	case semantic.IsInvariant(err):
		return fmt.Errorf("%sinternal error (please report): %w", prefix, err)
	case semantic.IsMalformed(err):
		return fmt.Errorf("%smalformed query: %w", prefix, err)
	default:
		return fmt.Errorf("%s%w", prefix, err)
	}
}
