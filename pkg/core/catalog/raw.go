package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Raw records are the handoff format from tabular ingestion. Values arrive
// as they were typed into the source sheets; normalization into the closed
// domain types happens in the builders, never downstream.

// RawProvider is one contract row. Nil quotas mean uncapped.
type RawProvider struct {
	Name            string `yaml:"name"`
	Contract        string `yaml:"contract"`
	ShiftPreference string `yaml:"shiftPreference"`
	TotalShifts     *int   `yaml:"totalShifts"`
	WeekendShifts   *int   `yaml:"weekendShifts"`
	PMShifts        *int   `yaml:"pmShifts"`
}

// RawCredential lists the facilities a provider is credentialed for,
// comma-separated.
type RawCredential struct {
	Provider   string `yaml:"provider"`
	Facilities string `yaml:"facilities"`
}

// RawDayStatus is one availability cell: the status text for one day.
type RawDayStatus struct {
	Day    int    `yaml:"day"`
	Status string `yaml:"status"`
}

// RawAvailability is one provider's availability column.
type RawAvailability struct {
	Provider string         `yaml:"provider"`
	Days     []RawDayStatus `yaml:"days"`
}

// RawFacility is one facility volume row. Volumes are kept as text because
// sheets mark unoffered shift types with "NC".
type RawFacility struct {
	Name      string `yaml:"name"`
	VolumeMD1 string `yaml:"volumeMD1"`
	VolumeMD2 string `yaml:"volumeMD2"`
	VolumePM  string `yaml:"volumePM"`
}

// RawCoverage is one coverage row: the days a facility needs a shift type
// staffed, as a day-list expression ("1-31", "4-5, 11-12").
type RawCoverage struct {
	Facility string `yaml:"facility"`
	Shift    string `yaml:"shift"`
	Dates    string `yaml:"dates"`
}

// Input bundles every raw record set for one scheduling run.
type Input struct {
	Providers    []RawProvider     `yaml:"providers"`
	Credentials  []RawCredential   `yaml:"credentials"`
	Availability []RawAvailability `yaml:"availability"`
	Facilities   []RawFacility     `yaml:"facilities"`
	Coverage     []RawCoverage     `yaml:"coverage"`
}

// LoadInput reads a raw input bundle from a YAML file.
func LoadInput(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("failed to read input file: %w", err)
	}

	var input Input
	if err := yaml.Unmarshal(data, &input); err != nil {
		return Input{}, fmt.Errorf("failed to parse input file: %w", err)
	}
	return input, nil
}
