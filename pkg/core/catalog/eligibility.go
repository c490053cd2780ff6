package catalog

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"medroster/pkg/core/calendar"
	"medroster/pkg/core/model"
)

type contractInfo struct {
	class     model.ContractClass
	total     model.Quota
	weekend   model.Quota
	pm        model.Quota
	preferred model.ShiftSet
}

func defaultContract() contractInfo {
	return contractInfo{
		class:     model.ClassIndependent,
		total:     model.QuotaUnlimited,
		weekend:   model.QuotaUnlimited,
		pm:        model.QuotaUnlimited,
		preferred: model.ShiftSet{},
	}
}

// BuildEligibility assembles the provider index. The availability records
// define the provider universe: contract and credential records naming a
// provider with no availability column are dropped with a warning, since
// there is nothing to schedule against. Missing contracts default to an
// uncapped independent contractor; missing credentials leave the provider
// staffable nowhere.
func BuildEligibility(availability []RawAvailability, contracts []RawProvider, credentials []RawCredential, month calendar.Month, logger *zap.Logger) (Eligibility, error) {
	availByKey := map[string]model.Availability{}
	var keys []string
	availCounts := map[string]int{}
	for _, rec := range availability {
		if strings.TrimSpace(rec.Provider) == "" {
			logger.Warn("availability record without provider name, skipped")
			continue
		}
		key := dedupKey(availCounts, rec.Provider)

		avail := model.Availability{}
		for _, cell := range rec.Days {
			if !month.Contains(cell.Day) {
				logger.Warn("availability day outside month, skipped",
					zap.String("provider", key),
					zap.Int("day", cell.Day))
				continue
			}
			avail[cell.Day] = normalizeStatus(cell.Status)
		}

		availByKey[key] = avail
		keys = append(keys, key)
	}

	contractByKey := map[string]contractInfo{}
	contractCounts := map[string]int{}
	for _, rec := range contracts {
		if strings.TrimSpace(rec.Name) == "" {
			logger.Warn("contract record without provider name, skipped")
			continue
		}
		key := dedupKey(contractCounts, rec.Name)
		if _, ok := availByKey[key]; !ok {
			logger.Warn("contract for provider with no availability record, skipped",
				zap.String("provider", key))
			continue
		}
		contractByKey[key] = contractInfo{
			class:     normalizeClass(rec.Contract, key, logger),
			total:     normalizeQuota(rec.TotalShifts, "total", key, logger),
			weekend:   normalizeQuota(rec.WeekendShifts, "weekend", key, logger),
			pm:        normalizeQuota(rec.PMShifts, "pm", key, logger),
			preferred: normalizePreference(rec.ShiftPreference, key, logger),
		}
	}

	credByKey := map[string]map[string]bool{}
	credCounts := map[string]int{}
	for _, rec := range credentials {
		if strings.TrimSpace(rec.Provider) == "" {
			logger.Warn("credential record without provider name, skipped")
			continue
		}
		key := dedupKey(credCounts, rec.Provider)
		if _, ok := availByKey[key]; !ok {
			logger.Warn("credentials for provider with no availability record, skipped",
				zap.String("provider", key))
			continue
		}
		credByKey[key] = parseFacilityList(rec.Facilities)
	}

	sort.Strings(keys)
	providers := make([]model.Provider, 0, len(keys))
	byKey := make(map[string]int, len(keys))
	for _, key := range keys {
		contract, ok := contractByKey[key]
		if !ok {
			contract = defaultContract()
		}
		creds := credByKey[key]
		if creds == nil {
			creds = map[string]bool{}
		}

		byKey[key] = len(providers)
		providers = append(providers, model.Provider{
			Key:          key,
			Class:        contract.class,
			TotalQuota:   contract.total,
			WeekendQuota: contract.weekend,
			PMQuota:      contract.pm,
			Preferred:    contract.preferred,
			Credentials:  creds,
			Availability: availByKey[key],
		})
	}

	if len(providers) == 0 {
		return Eligibility{}, ErrNoProviders
	}

	logger.Debug("eligibility index built", zap.Int("providers", len(providers)))
	return Eligibility{Providers: providers, byKey: byKey}, nil
}

// normalizeStatus maps free-text availability cells onto the closed shift
// set. Anything unrecognized counts as fully available, matching how the
// source sheets are filled in (providers only write restrictions).
func normalizeStatus(raw string) model.ShiftSet {
	val := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case val == "":
		return model.AllShifts()
	case val == "unavailable":
		return model.ShiftSet{}
	case strings.Contains(val, "pm only"):
		return model.ShiftSet{model.ShiftPM: true}
	case strings.Contains(val, "am only"):
		return model.ShiftSet{model.ShiftMD1: true, model.ShiftMD2: true}
	default:
		return model.AllShifts()
	}
}

func normalizeClass(raw, provider string, logger *zap.Logger) model.ContractClass {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ft", "fixed", "full time", "full-time":
		return model.ClassFixed
	case "ic", "independent", "independent contractor", "":
		return model.ClassIndependent
	default:
		logger.Warn("unrecognized contract class, treated as independent",
			zap.String("provider", provider),
			zap.String("class", raw))
		return model.ClassIndependent
	}
}

func normalizeQuota(value *int, kind, provider string, logger *zap.Logger) model.Quota {
	if value == nil {
		return model.QuotaUnlimited
	}
	if *value < 0 {
		logger.Warn("negative quota treated as uncapped",
			zap.String("provider", provider),
			zap.String("quota", kind),
			zap.Int("value", *value))
		return model.QuotaUnlimited
	}
	if model.Quota(*value) >= model.QuotaUnlimited {
		return model.QuotaUnlimited
	}
	return model.Quota(*value)
}

func normalizePreference(raw, provider string, logger *zap.Logger) model.ShiftSet {
	preferred := model.ShiftSet{}
	val := strings.TrimSpace(raw)
	if val == "" || strings.EqualFold(val, "none") || strings.EqualFold(val, "nan") {
		return preferred
	}
	for _, token := range strings.Split(val, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		shift := model.ShiftType(strings.ToUpper(token))
		if !shift.IsValid() {
			logger.Warn("unrecognized shift preference, skipped",
				zap.String("provider", provider),
				zap.String("token", token))
			continue
		}
		preferred[shift] = true
	}
	return preferred
}

func parseFacilityList(raw string) map[string]bool {
	facilities := map[string]bool{}
	val := strings.TrimSpace(raw)
	if val == "" || strings.EqualFold(val, "nan") {
		return facilities
	}
	for _, token := range strings.Split(val, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			facilities[token] = true
		}
	}
	return facilities
}
