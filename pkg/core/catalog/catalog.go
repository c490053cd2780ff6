// Package catalog derives the three read-only catalogs a scheduling run
// consumes: the eligibility index, the facility index and the slot catalog.
// Raw input defects are logged and skipped, never fatal; only an entirely
// empty catalog fails the run.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"medroster/pkg/core/model"
)

var (
	ErrNoProviders  = errors.New("no providers in eligibility index")
	ErrNoFacilities = errors.New("no facilities in facility index")
	ErrNoSlots      = errors.New("no slots require coverage")
)

// Eligibility is the per-provider view of who may work what. Providers is
// sorted by key; that order is the documented tie-break order everywhere
// downstream.
type Eligibility struct {
	Providers []model.Provider

	byKey map[string]int
}

func (e Eligibility) Provider(key string) (model.Provider, bool) {
	i, ok := e.byKey[key]
	if !ok {
		return model.Provider{}, false
	}
	return e.Providers[i], true
}

func (e Eligibility) Keys() []string {
	keys := make([]string, len(e.Providers))
	for i, p := range e.Providers {
		keys[i] = p.Key
	}
	return keys
}

// Facilities is the facility index, sorted by key.
type Facilities struct {
	Facilities []model.Facility

	byKey map[string]int
}

func (f Facilities) Get(key string) (model.Facility, bool) {
	i, ok := f.byKey[key]
	if !ok {
		return model.Facility{}, false
	}
	return f.Facilities[i], true
}

// Volume returns the expected patient volume for a facility shift type,
// zero when unknown or not offered.
func (f Facilities) Volume(facility string, shift model.ShiftType) float64 {
	i, ok := f.byKey[facility]
	if !ok {
		return 0
	}
	return f.Facilities[i].Volumes[shift]
}

// dedupKey disambiguates repeated display names the way the source sheets
// are read: the second "J. Smith" becomes "J. Smith (2)".
func dedupKey(counts map[string]int, raw string) string {
	name := strings.TrimSpace(raw)
	counts[name]++
	if counts[name] > 1 {
		return fmt.Sprintf("%s (%d)", name, counts[name])
	}
	return name
}
