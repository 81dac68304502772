package model

// Level and region names as they appear in callback tokens.
const (
	LevelPrimary       = "primary"
	LevelSecondary     = "secondary"
	LevelJC            = "jc"
	LevelInternational = "international"
)

// Levels lists the four teaching levels in menu order.
var Levels = []string{LevelPrimary, LevelSecondary, LevelJC, LevelInternational}

func (l *TeachingLevels) subjectFlags(level string) map[string]*bool {
	switch level {
	case LevelPrimary:
		p := &l.Primary
		return map[string]*bool{
			"english": &p.Eng, "math": &p.Math, "science": &p.Science,
			"chinese": &p.Chinese, "malay": &p.Malay, "tamil": &p.Tamil,
		}
	case LevelSecondary:
		s := &l.Secondary
		return map[string]*bool{
			"english": &s.Eng, "emath": &s.EMath, "amath": &s.AMath,
			"physics": &s.Physics, "chemistry": &s.Chemistry, "biology": &s.Biology,
			"chinese": &s.Chinese, "history": &s.History, "geography": &s.Geography,
		}
	case LevelJC:
		j := &l.JC
		return map[string]*bool{
			"gp": &j.GP, "math": &j.Math, "physics": &j.Physics,
			"chemistry": &j.Chemistry, "biology": &j.Biology, "economics": &j.Economics,
		}
	case LevelInternational:
		i := &l.International
		return map[string]*bool{
			"ib_math": &i.IBMath, "ib_english": &i.IBEng, "igcse": &i.IGCSE,
			"sat": &i.SAT, "ielts": &i.IELTS, "toefl": &i.TOEFL,
		}
	}
	return nil
}

// SubjectsForLevel returns the subject keys for a level in menu order.
func SubjectsForLevel(level string) []string {
	switch level {
	case LevelPrimary:
		return []string{"english", "math", "science", "chinese", "malay", "tamil"}
	case LevelSecondary:
		return []string{"english", "emath", "amath", "physics", "chemistry", "biology", "chinese", "history", "geography"}
	case LevelJC:
		return []string{"gp", "math", "physics", "chemistry", "biology", "economics"}
	case LevelInternational:
		return []string{"ib_math", "ib_english", "igcse", "sat", "ielts", "toefl"}
	}
	return nil
}

// SubjectEnabled reports the current value of one subject flag.
func (l *TeachingLevels) SubjectEnabled(level, subject string) bool {
	flags := l.subjectFlags(level)
	if flags == nil {
		return false
	}
	if f, ok := flags[subject]; ok {
		return *f
	}
	return false
}

// ToggleSubject flips exactly one subject flag. Returns false if the
// level/subject pair is unknown.
func (l *TeachingLevels) ToggleSubject(level, subject string) bool {
	flags := l.subjectFlags(level)
	if flags == nil {
		return false
	}
	f, ok := flags[subject]
	if !ok {
		return false
	}
	*f = !*f
	return true
}

// Regions lists the location flags in menu order.
var Regions = []string{"north", "south", "east", "west", "central", "northeast", "northwest"}

func (l *Locations) flags() map[string]*bool {
	return map[string]*bool{
		"north": &l.North, "south": &l.South, "east": &l.East, "west": &l.West,
		"central": &l.Central, "northeast": &l.Northeast, "northwest": &l.Northwest,
	}
}

// Enabled reports the current value of one region flag.
func (l *Locations) Enabled(region string) bool {
	if f, ok := l.flags()[region]; ok {
		return *f
	}
	return false
}

// Toggle flips one region flag. Returns false for an unknown region.
func (l *Locations) Toggle(region string) bool {
	f, ok := l.flags()[region]
	if !ok {
		return false
	}
	*f = !*f
	return true
}

// SlotNames lists the six day-part flags in menu order.
var SlotNames = []string{
	"weekday_morning", "weekday_afternoon", "weekday_evening",
	"weekend_morning", "weekend_afternoon", "weekend_evening",
}

func (t *TimeSlots) flags() map[string]*bool {
	return map[string]*bool{
		"weekday_morning": &t.WeekdayMorning, "weekday_afternoon": &t.WeekdayAfternoon,
		"weekday_evening": &t.WeekdayEvening, "weekend_morning": &t.WeekendMorning,
		"weekend_afternoon": &t.WeekendAfternoon, "weekend_evening": &t.WeekendEvening,
	}
}

// Enabled reports the current value of one day-part flag.
func (t *TimeSlots) Enabled(slot string) bool {
	if f, ok := t.flags()[slot]; ok {
		return *f
	}
	return false
}

// Toggle flips one day-part flag. Returns false for an unknown slot.
func (t *TimeSlots) Toggle(slot string) bool {
	f, ok := t.flags()[slot]
	if !ok {
		return false
	}
	*f = !*f
	return true
}

// IsSlotName reports whether name is one of the six day-part flags.
func IsSlotName(name string) bool {
	for _, s := range SlotNames {
		if s == name {
			return true
		}
	}
	return false
}

// IsLevel reports whether name is one of the four teaching levels.
func IsLevel(name string) bool {
	for _, l := range Levels {
		if l == name {
			return true
		}
	}
	return false
}

// RateFor returns the stored rate for a level.
func (r *HourlyRates) RateFor(level string) string {
	switch level {
	case LevelPrimary:
		return r.Primary
	case LevelSecondary:
		return r.Secondary
	case LevelJC:
		return r.JC
	case LevelInternational:
		return r.International
	}
	return ""
}

// SetRate stores the rate for a level. Returns false for an unknown level.
func (r *HourlyRates) SetRate(level, rate string) bool {
	switch level {
	case LevelPrimary:
		r.Primary = rate
	case LevelSecondary:
		r.Secondary = rate
	case LevelJC:
		r.JC = rate
	case LevelInternational:
		r.International = rate
	default:
		return false
	}
	return true
}
