package model

type ShiftType string

const (
	ShiftMD1 ShiftType = "MD1"
	ShiftMD2 ShiftType = "MD2"
	ShiftPM  ShiftType = "PM"
)

func (s ShiftType) IsValid() bool {
	return s == ShiftMD1 || s == ShiftMD2 || s == ShiftPM
}

// Order gives the canonical sort position of a shift type. Slot catalogs,
// solver variables and reports all iterate MD1, then MD2, then PM.
func (s ShiftType) Order() int {
	switch s {
	case ShiftMD1:
		return 0
	case ShiftMD2:
		return 1
	case ShiftPM:
		return 2
	}
	return 3
}

// ShiftTypes returns every shift type in canonical order.
func ShiftTypes() []ShiftType {
	return []ShiftType{ShiftMD1, ShiftMD2, ShiftPM}
}

// WindowRule caps working shifts inside any run of consecutive days: at most
// Max working shifts in every Span-day stretch.
type WindowRule struct {
	Span int
	Max  int
}

// ShiftSpec is the static profile of a shift type.
type ShiftSpec struct {
	Hours     int
	MinVolume float64
	MaxVolume float64
	Window    WindowRule
}

var shiftSpecs = map[ShiftType]ShiftSpec{
	ShiftMD1: {Hours: 8, MinVolume: 6, MaxVolume: 14, Window: WindowRule{Span: 5, Max: 4}},
	ShiftMD2: {Hours: 8, MinVolume: 8, MaxVolume: 16, Window: WindowRule{Span: 8, Max: 7}},
	ShiftPM:  {Hours: 12, MinVolume: 5, MaxVolume: 10, Window: WindowRule{Span: 4, Max: 3}},
}

func (s ShiftType) Spec() ShiftSpec {
	return shiftSpecs[s]
}

// CombinedMD1PMWindow caps MD1 and PM working shifts counted together, on
// top of the per-type windows.
func CombinedMD1PMWindow() WindowRule {
	return WindowRule{Span: 5, Max: 4}
}

const (
	// DailyHourCap is the most shift hours a provider may hold on one day.
	// Every shift type is at least 8 hours, so the cap also means a provider
	// works at most one shift type per day.
	DailyHourCap = 12

	// MonthlyShiftCeiling bounds working shifts per provider per month
	// regardless of contract quotas.
	MonthlyShiftCeiling = 20
)
