package testutil

import "github.com/pkg/errors"

// SameErrorString reports whether err and target are both nil or render
// the same message.
func SameErrorString(err, target error) bool {
	if err == nil || target == nil {
		return err == target
	}
	return err.Error() == target.Error()
}

// SameCause reports whether err and target unwrap, through
// github.com/pkg/errors causes, to the same underlying error.
func SameCause(err, target error) bool {
	return errors.Cause(err) == errors.Cause(target)
}
