package courierdz

import (
	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/ecotrack"
	"github.com/tournevent/courierdz/pkg/courier/maystro"
	"github.com/tournevent/courierdz/pkg/courier/procolis"
	"github.com/tournevent/courierdz/pkg/courier/yalidine"
)

// Family names one upstream API family.
type Family string

const (
	FamilyEcotrack Family = "ecotrack"
	FamilyYalidine Family = "yalidine"
	FamilyProcolis Family = "procolis"
	FamilyMaystro  Family = "maystro"
)

var registrars = map[Family]func(*courier.Registry){
	FamilyEcotrack: ecotrack.Register,
	FamilyYalidine: yalidine.Register,
	FamilyProcolis: procolis.Register,
	FamilyMaystro:  maystro.Register,
}

// Families returns every supported family.
func Families() []Family {
	return []Family{FamilyEcotrack, FamilyYalidine, FamilyProcolis, FamilyMaystro}
}

// NewRegistry creates a registry holding the providers of the given
// families, or of every family when none is given. Unknown families are
// ignored.
func NewRegistry(deps courier.Deps, families ...Family) *courier.Registry {
	if len(families) == 0 {
		families = Families()
	}

	r := courier.NewRegistry(deps)
	for _, f := range families {
		RegisterFamily(r, f)
	}
	return r
}

// RegisterFamily adds the providers of family f to r. It reports false for
// an unknown family.
func RegisterFamily(r *courier.Registry, f Family) bool {
	register, ok := registrars[f]
	if ok {
		register(r)
	}
	return ok
}
