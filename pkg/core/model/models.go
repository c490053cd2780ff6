package model

type ContractClass string

const (
	ClassFixed       ContractClass = "Fixed"
	ClassIndependent ContractClass = "Independent"
)

func (c ContractClass) IsValid() bool {
	return c == ClassFixed || c == ClassIndependent
}

// Quota is a monthly shift allowance. QuotaUnlimited marks an allowance
// that never constrains.
type Quota int

const QuotaUnlimited Quota = 999

func (q Quota) Bounded() bool {
	return q < QuotaUnlimited
}

// ShiftSet is the set of shift types a provider may take on a given day.
type ShiftSet map[ShiftType]bool

func (s ShiftSet) Has(t ShiftType) bool {
	return s[t]
}

// AllShifts returns a set holding every shift type.
func AllShifts() ShiftSet {
	return ShiftSet{ShiftMD1: true, ShiftMD2: true, ShiftPM: true}
}

// Availability maps day of month to the shift types a provider accepts that
// day. A missing day means the provider is unavailable.
type Availability map[int]ShiftSet

func (a Availability) Allows(day int, t ShiftType) bool {
	return a[day].Has(t)
}

// Provider represents a credentialed medical provider
type Provider struct {
	Key          string // display name, deduplicated
	Class        ContractClass
	TotalQuota   Quota
	WeekendQuota Quota
	PMQuota      Quota
	Preferred    ShiftSet        // shift types the provider asked for
	Credentials  map[string]bool // facility keys the provider may staff
	Availability Availability
}

func (p Provider) CredentialedAt(facility string) bool {
	return p.Credentials[facility]
}

// DaySet holds days of a month.
type DaySet map[int]bool

func (d DaySet) Has(day int) bool {
	return d[day]
}

// Facility represents a clinical site
type Facility struct {
	Key      string
	Volumes  map[ShiftType]float64 // expected patient volume; 0 means not offered
	Coverage map[ShiftType]DaySet  // days each shift type must be staffed
}

// Slot is one facility-shift-day coverage requirement.
type Slot struct {
	Facility string
	Shift    ShiftType
	Day      int
}

// Assignment binds a provider to a slot. Assignments are never revoked;
// later phases only add.
type Assignment struct {
	Provider string
	Facility string
	Shift    ShiftType
	Day      int
}

func (a Assignment) Slot() Slot {
	return Slot{Facility: a.Facility, Shift: a.Shift, Day: a.Day}
}

// WorkingShift is the unit workload counts against: a provider holding one
// or more same-type assignments on one day. Covering two facilities in the
// same working shift is still one shift.
type WorkingShift struct {
	Provider string
	Shift    ShiftType
	Day      int
}

func (a Assignment) WorkingShift() WorkingShift {
	return WorkingShift{Provider: a.Provider, Shift: a.Shift, Day: a.Day}
}
