package catalog

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"medroster/pkg/core/calendar"
	"medroster/pkg/core/model"
)

// BuildFacilities assembles the facility index from volume rows and
// coverage rows. A facility appears if either names it; a facility with
// coverage but no volume record offers nothing and is flagged, since its
// slots could never be created.
func BuildFacilities(facilities []RawFacility, coverage []RawCoverage, month calendar.Month, logger *zap.Logger) (Facilities, error) {
	volumes := map[string]map[model.ShiftType]float64{}
	for _, rec := range facilities {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			logger.Warn("facility volume record without name, skipped")
			continue
		}
		if _, ok := volumes[name]; ok {
			logger.Warn("duplicate facility volume record, last one wins",
				zap.String("facility", name))
		}
		volumes[name] = map[model.ShiftType]float64{
			model.ShiftMD1: parseVolume(rec.VolumeMD1, name, model.ShiftMD1, logger),
			model.ShiftMD2: parseVolume(rec.VolumeMD2, name, model.ShiftMD2, logger),
			model.ShiftPM:  parseVolume(rec.VolumePM, name, model.ShiftPM, logger),
		}
	}

	coverageByFacility := map[string]map[model.ShiftType]model.DaySet{}
	for _, rec := range coverage {
		name := strings.TrimSpace(rec.Facility)
		if name == "" {
			logger.Warn("coverage record without facility name, skipped")
			continue
		}
		shift := model.ShiftType(strings.ToUpper(strings.TrimSpace(rec.Shift)))
		if !shift.IsValid() {
			logger.Warn("coverage record with unknown shift type, skipped",
				zap.String("facility", name),
				zap.String("shift", rec.Shift))
			continue
		}

		days, warnings := calendar.ParseDayList(rec.Dates, month.DayCount())
		for _, warning := range warnings {
			logger.Warn("coverage dates partially unparsable",
				zap.String("facility", name),
				zap.String("shift", string(shift)),
				zap.String("problem", warning))
		}

		daySet := model.DaySet{}
		for _, day := range days {
			daySet[day] = true
		}
		if coverageByFacility[name] == nil {
			coverageByFacility[name] = map[model.ShiftType]model.DaySet{}
		}
		coverageByFacility[name][shift] = daySet
	}

	names := map[string]bool{}
	for name := range volumes {
		names[name] = true
	}
	for name := range coverageByFacility {
		if !names[name] {
			logger.Warn("facility has coverage but no volume record, nothing will be offered",
				zap.String("facility", name))
			names[name] = true
		}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	index := make([]model.Facility, 0, len(sorted))
	byKey := make(map[string]int, len(sorted))
	for _, name := range sorted {
		vols := volumes[name]
		if vols == nil {
			vols = map[model.ShiftType]float64{}
		}
		cov := coverageByFacility[name]
		if cov == nil {
			cov = map[model.ShiftType]model.DaySet{}
		}
		byKey[name] = len(index)
		index = append(index, model.Facility{Key: name, Volumes: vols, Coverage: cov})
	}

	if len(index) == 0 {
		return Facilities{}, ErrNoFacilities
	}

	logger.Debug("facility index built", zap.Int("facilities", len(index)))
	return Facilities{Facilities: index, byKey: byKey}, nil
}

// parseVolume reads an expected-volume cell. "NC" and blanks mean the shift
// type is not offered at the facility.
func parseVolume(raw, facility string, shift model.ShiftType, logger *zap.Logger) float64 {
	val := strings.TrimSpace(raw)
	if val == "" || strings.EqualFold(val, "nc") || strings.EqualFold(val, "nan") {
		return 0
	}
	volume, err := strconv.ParseFloat(val, 64)
	if err != nil {
		logger.Warn("unparsable volume treated as not offered",
			zap.String("facility", facility),
			zap.String("shift", string(shift)),
			zap.String("value", raw))
		return 0
	}
	if volume < 0 {
		logger.Warn("negative volume treated as not offered",
			zap.String("facility", facility),
			zap.String("shift", string(shift)),
			zap.Float64("value", volume))
		return 0
	}
	return volume
}
