package workspace

import (
	"github.com/Masterminds/semver/v3"

	"c4kit/internal/errors"
)

// DefaultSchema is assumed for declarations that do not state a schema
const DefaultSchema = "1.0.0"

// DefaultSupportedSchema is the schema range this build reads
const DefaultSupportedSchema = "^1.0.0"

// CheckSchema reports whether a declaration's schema version satisfies the
// supported constraint. An empty version means DefaultSchema and an empty
// constraint means DefaultSupportedSchema.
func CheckSchema(version, constraint string) error {
	if version == "" {
		version = DefaultSchema
	}
	if constraint == "" {
		constraint = DefaultSupportedSchema
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.NewError(errors.ConfigurationError, "invalid supported schema range "+constraint, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.NewError(errors.InvalidWorkspace, "schema "+version+" is not a semantic version", err)
	}
	if !c.Check(v) {
		return errors.Errorf(errors.UnsupportedVersion,
			"workspace schema %s is outside the supported range %s", v, constraint)
	}
	return nil
}
