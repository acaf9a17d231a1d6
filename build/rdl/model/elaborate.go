package model

import (
	"errors"
	"fmt"
	"sort"
)

// SupportedWidth is the only register width elaboration accepts.
const SupportedWidth = 8

var (
	ErrUnsupportedWidth = errors.New("unsupported register width")
	ErrFieldRange       = errors.New("field outside of register")
	ErrOverlap          = errors.New("overlapping fields")
)

// Elaborate lays out the fields of r: declared fields are sorted descending
// by their low bit and every gap is filled with a reserved field, so that
// the result covers [0, Width) exactly.
func (r *Register) Elaborate() error {
	if r.Width != SupportedWidth {
		return fmt.Errorf("register %v: %w: %d bits (only %d supported)",
			r.PrefixedName(), ErrUnsupportedWidth, r.Width, SupportedWidth)
	}

	fields := r.PackedFields()
	sortDescending(fields)

	for i, f := range fields {
		if f.Low < 0 || f.High < f.Low || f.High >= r.Width {
			return fmt.Errorf("register %v: %w: %v [%d:%d]",
				r.PrefixedName(), ErrFieldRange, f.Name, f.High, f.Low)
		}
		if i > 0 && fields[i-1].Low <= f.High {
			return fmt.Errorf("register %v: %w: %v [%d:%d] and %v [%d:%d]",
				r.PrefixedName(), ErrOverlap,
				fields[i-1].Name, fields[i-1].High, fields[i-1].Low,
				f.Name, f.High, f.Low)
		}
		r.maxFieldNameChars = max(r.maxFieldNameChars, len(f.Name))
	}

	var gaps []*Field
	expected := r.Width - 1
	for _, f := range fields {
		if f.High != expected {
			gaps = append(gaps, NewReservedField(expected, f.High+1))
		}
		expected = f.Low - 1
	}
	if expected >= 0 {
		gaps = append(gaps, NewReservedField(expected, 0))
	}

	r.Fields = append(fields, gaps...)
	sortDescending(r.Fields)
	return nil
}

func sortDescending(fields []*Field) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Low > fields[j].Low
	})
}
