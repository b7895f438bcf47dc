package dotenv

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

// ApplyResult reports what Apply changed.
type ApplyResult struct {
	Applied int
	// Kept counts assignments ignored because the variable already existed and override was off.
	Kept int
}

// Apply sets each assignment on env in file order, so the last occurrence of a key wins.
// With override false, variables that existed before Apply was called are left untouched.
// Failures are collected and returned together; the remaining assignments are still applied.
func Apply(assignments []model.Assignment, env Environment, override bool, masker *Masker) (ApplyResult, error) {
	var (
		result ApplyResult
		errs   error
	)

	preexisting := make(map[string]bool)
	if !override {
		for _, a := range assignments {
			if _, ok := env.Lookup(a.Key); ok {
				preexisting[a.Key] = true
			}
		}
	}

	for _, a := range assignments {
		if preexisting[a.Key] {
			logger.Debugf("dotenv: keeping existing %s (line %d)", a.Key, a.Line)
			result.Kept++
			continue
		}
		if err := env.Set(a.Key, a.Value); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("line %d: %w", a.Line, err))
			continue
		}
		logger.Debugf("dotenv: %s=%s", a.Key, masker.Mask(a.Key, a.Value))
		result.Applied++
	}
	return result, errs
}
