package schema

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Incompatibility is a field in use that the target library version lacks.
type Incompatibility struct {
	Path  string
	Since string
}

func (i Incompatibility) String() string {
	return fmt.Sprintf("%s requires version %s or later", i.Path, i.Since)
}

// CheckCompatibility lists the fields of r, nested records included, that are
// not unset and were introduced after target.
func CheckCompatibility(r *Record, target string) ([]Incompatibility, error) {
	want, err := semver.NewVersion(target)
	if err != nil {
		return nil, fmt.Errorf("invalid target version %q: %w", target, err)
	}
	var out []Incompatibility
	if err := checkRecord(r, want, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func checkRecord(r *Record, want *semver.Version, prefix string, out *[]Incompatibility) error {
	for _, f := range r.schema.fields {
		v := r.values[f.Name]
		if v.State == StateUnset {
			continue
		}
		// Substituted defaults are filled in by decoding, not written by the author.
		if f.Default.mode == modeAbsent && v.State == StateSet && equalValue(v.V, f.literal.V) {
			continue
		}
		path := prefix + f.External

		if f.Since != "" {
			since, err := semver.NewVersion(f.Since)
			if err != nil {
				return fmt.Errorf("field %s declares invalid version %q: %w", path, f.Since, err)
			}
			if since.GreaterThan(want) {
				*out = append(*out, Incompatibility{Path: path, Since: f.Since})
			}
		}

		if v.State != StateSet {
			continue
		}
		switch x := v.V.(type) {
		case *Record:
			if err := checkRecord(x, want, path+".", out); err != nil {
				return err
			}
		case []*Record:
			for i, rec := range x {
				if err := checkRecord(rec, want, fmt.Sprintf("%s[%d].", path, i), out); err != nil {
					return err
				}
			}
		case Choice:
			if rec := x.Record(); rec != nil {
				if err := checkRecord(rec, want, path+".", out); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
