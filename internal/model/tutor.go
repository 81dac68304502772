package model

import "time"

// Tutor is a service-provider profile. The nested structures are optional
// and must be initialized via their constructors before any flag is flipped.
type Tutor struct {
	ID              int64           `json:"id"`
	ContactNumber   string          `json:"contact_number"`
	ChatID          int64           `json:"chat_id"` // 0 = no chat bound yet
	Name            string          `json:"name"`
	Age             int             `json:"age"`
	Gender          string          `json:"gender"`
	Race            string          `json:"race"`
	Nationality     string          `json:"nationality"`
	Education       string          `json:"education"`
	YearsExperience string          `json:"years_experience"`
	TeachingLevels  *TeachingLevels `json:"teaching_levels,omitempty"`
	Locations       *Locations      `json:"locations,omitempty"`
	TimeSlots       *TimeSlots      `json:"time_slots,omitempty"`
	HourlyRates     *HourlyRates    `json:"hourly_rates,omitempty"`
	Introduction    string          `json:"introduction"`
	TrackRecord     string          `json:"track_record"`
	SellingPoints   string          `json:"selling_points"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TeachingLevels groups the per-level subject flags.
type TeachingLevels struct {
	Primary       PrimarySubjects       `json:"primary"`
	Secondary     SecondarySubjects     `json:"secondary"`
	JC            JCSubjects            `json:"jc"`
	International InternationalSubjects `json:"international"`
}

type PrimarySubjects struct {
	Eng     bool `json:"english"`
	Math    bool `json:"math"`
	Science bool `json:"science"`
	Chinese bool `json:"chinese"`
	Malay   bool `json:"malay"`
	Tamil   bool `json:"tamil"`
}

type SecondarySubjects struct {
	Eng       bool `json:"english"`
	EMath     bool `json:"emath"`
	AMath     bool `json:"amath"`
	Physics   bool `json:"physics"`
	Chemistry bool `json:"chemistry"`
	Biology   bool `json:"biology"`
	Chinese   bool `json:"chinese"`
	History   bool `json:"history"`
	Geography bool `json:"geography"`
}

type JCSubjects struct {
	GP        bool `json:"gp"`
	Math      bool `json:"math"`
	Physics   bool `json:"physics"`
	Chemistry bool `json:"chemistry"`
	Biology   bool `json:"biology"`
	Economics bool `json:"economics"`
}

type InternationalSubjects struct {
	IBMath bool `json:"ib_math"`
	IBEng  bool `json:"ib_english"`
	IGCSE  bool `json:"igcse"`
	SAT    bool `json:"sat"`
	IELTS  bool `json:"ielts"`
	TOEFL  bool `json:"toefl"`
}

// Locations are the region flags a tutor is willing to travel to.
type Locations struct {
	North     bool `json:"north"`
	South     bool `json:"south"`
	East      bool `json:"east"`
	West      bool `json:"west"`
	Central   bool `json:"central"`
	Northeast bool `json:"northeast"`
	Northwest bool `json:"northwest"`
}

// TimeSlots are the six day-part availability flags.
type TimeSlots struct {
	WeekdayMorning   bool `json:"weekday_morning"`
	WeekdayAfternoon bool `json:"weekday_afternoon"`
	WeekdayEvening   bool `json:"weekday_evening"`
	WeekendMorning   bool `json:"weekend_morning"`
	WeekendAfternoon bool `json:"weekend_afternoon"`
	WeekendEvening   bool `json:"weekend_evening"`
}

// HourlyRates holds the per-level rate as entered by the tutor.
type HourlyRates struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	JC            string `json:"jc"`
	International string `json:"international"`
}

// NewTeachingLevels returns the all-false structure.
func NewTeachingLevels() *TeachingLevels { return &TeachingLevels{} }

// NewLocations returns the all-false structure.
func NewLocations() *Locations { return &Locations{} }

// NewTimeSlots returns the all-false structure.
func NewTimeSlots() *TimeSlots { return &TimeSlots{} }

// NewHourlyRates returns the empty structure.
func NewHourlyRates() *HourlyRates { return &HourlyRates{} }

// EnsureNested initializes any absent nested structure so toggles can be
// applied without per-call-site guards.
func (t *Tutor) EnsureNested() {
	if t.TeachingLevels == nil {
		t.TeachingLevels = NewTeachingLevels()
	}
	if t.Locations == nil {
		t.Locations = NewLocations()
	}
	if t.TimeSlots == nil {
		t.TimeSlots = NewTimeSlots()
	}
	if t.HourlyRates == nil {
		t.HourlyRates = NewHourlyRates()
	}
}
