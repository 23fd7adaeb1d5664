package version

import (
	"fmt"
	"regexp"
)

var semverPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

// Bump regenerates the version file for data.Version then commits and tags
// it
func Bump(data BumpData, generator VersionGenerator, vc VersionControl) error {
	if !semverPattern.MatchString(data.Version) {
		return fmt.Errorf("invalid version %q, expected vMAJOR.MINOR.PATCH", data.Version)
	}

	if err := generator.Generate(VersionData{VERSION: data.Version}); err != nil {
		return fmt.Errorf("failed generating %s: %w", data.OutFile, err)
	}

	if err := vc.Add(data.OutFile); err != nil {
		return err
	}

	if err := vc.Commit(fmt.Sprintf("Bump version %s", data.Version)); err != nil {
		return err
	}

	return vc.Tag(data.Version)
}
