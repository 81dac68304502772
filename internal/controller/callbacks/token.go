package callbacks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sgtutorhub/assignment_bot/internal/model"
)

// Callback-data tokens are ASCII, underscore-delimited and at most 64 bytes
// (platform limit). Each token is decoded exactly once, at the boundary,
// into an Action; the router then switches over Action kinds. Parse order
// matters and mirrors the dispatch precedence: exact tokens, admin tokens,
// then the prefix table in fixed order.

type Kind int

const (
	KindUnknown Kind = iota
	KindStart
	KindNoop
	KindProfileConfirm
	KindProfileEdit
	KindMainMenu
	KindViewAssignments
	KindViewApplications
	KindMenuLevels
	KindMenuLevel
	KindMenuLocations
	KindMenuTimeSlots
	KindMenuRates
	KindMenuFilters
	KindAssignPage
	KindAppsPage
	KindApply
	KindWithdrawAsk
	KindWithdrawConfirm
	KindViewApplication
	KindEditField
	KindSetGender
	KindSetRace
	KindSetEducation
	KindSetRate
	KindToggleSubject
	KindToggleSlot
	KindToggleLocation
	KindFilterLevel
	KindFilterLocation
	KindFilterClear
	KindAdminStats
	KindAdminBroadcast
	KindAdminPost
	KindAdminCancel
	KindAdminAccept
	KindAdminReject
)

// Action is a decoded callback token.
type Action struct {
	Kind         Kind
	Page         int
	AssignmentID string
	TutorID      int64
	Field        string
	Level        string
	Subject      string
	Slot         string
	Region       string
	Value        string
}

// Admin reports whether the action is gated by the admin allowlist.
func (a Action) Admin() bool {
	switch a.Kind {
	case KindAdminStats, KindAdminBroadcast, KindAdminPost, KindAdminCancel,
		KindAdminAccept, KindAdminReject:
		return true
	}
	return false
}

// RequiresAuth reports whether the action needs a bound tutor. Admin actions
// are gated by chat identity instead; start, noop and the fallback only need
// a live session.
func (a Action) RequiresAuth() bool {
	switch a.Kind {
	case KindStart, KindNoop, KindUnknown:
		return false
	}
	return !a.Admin()
}

// Exact tokens.
const (
	DataStart            = "start"
	DataNoop             = "noop"
	DataProfileConfirm   = "profile_confirm"
	DataProfileEdit      = "profile_edit"
	DataMainMenu         = "main_menu"
	DataViewAssignments  = "view_assignments"
	DataViewApplications = "view_applications"
	DataMenuLevels       = "menu_levels"
	DataMenuLocations    = "menu_locations"
	DataMenuTimeSlots    = "menu_timeslots"
	DataMenuRates        = "menu_rates"
	DataMenuFilters      = "menu_filters"
	DataFilterClear      = "filter_clear"
	DataAdminStats       = "admin_stats"
	DataAdminBroadcast   = "admin_broadcast"
	DataAdminPost        = "admin_post"
	DataAdminCancel      = "admin_cancel"
)

var exactTokens = map[string]Kind{
	DataStart:            KindStart,
	DataNoop:             KindNoop,
	DataProfileConfirm:   KindProfileConfirm,
	DataProfileEdit:      KindProfileEdit,
	DataMainMenu:         KindMainMenu,
	DataViewAssignments:  KindViewAssignments,
	DataViewApplications: KindViewApplications,
	DataMenuLevels:       KindMenuLevels,
	DataMenuLocations:    KindMenuLocations,
	DataMenuTimeSlots:    KindMenuTimeSlots,
	DataMenuRates:        KindMenuRates,
	DataMenuFilters:      KindMenuFilters,
	DataFilterClear:      KindFilterClear,
	DataAdminStats:       KindAdminStats,
	DataAdminBroadcast:   KindAdminBroadcast,
	DataAdminPost:        KindAdminPost,
	DataAdminCancel:      KindAdminCancel,
}

// ParseToken decodes raw callback data into an Action. Anything that does
// not decode cleanly comes back as KindUnknown: the fallback arm, never an
// error.
func ParseToken(data string) Action {
	if kind, ok := exactTokens[data]; ok {
		return Action{Kind: kind}
	}

	// Admin tokens are matched ahead of the generic prefix table.
	if rest, ok := cut(data, "admin_accept_"); ok {
		if id, tutorID, ok := splitPair(rest); ok {
			return Action{Kind: KindAdminAccept, AssignmentID: id, TutorID: tutorID}
		}
		return Action{Kind: KindUnknown}
	}
	if rest, ok := cut(data, "admin_reject_"); ok {
		if id, tutorID, ok := splitPair(rest); ok {
			return Action{Kind: KindAdminReject, AssignmentID: id, TutorID: tutorID}
		}
		return Action{Kind: KindUnknown}
	}

	// Generic prefix table, fixed order.
	if rest, ok := cut(data, "assign_page_"); ok {
		return pageAction(KindAssignPage, rest)
	}
	if rest, ok := cut(data, "apps_page_"); ok {
		return pageAction(KindAppsPage, rest)
	}
	if rest, ok := cut(data, "apply_"); ok {
		return Action{Kind: KindApply, AssignmentID: rest}
	}
	if rest, ok := cut(data, "menu_level_"); ok {
		if model.IsLevel(rest) {
			return Action{Kind: KindMenuLevel, Level: rest}
		}
		return Action{Kind: KindUnknown}
	}
	if rest, ok := cut(data, "edit_"); ok {
		return Action{Kind: KindEditField, Field: rest}
	}
	if rest, ok := cut(data, "toggle_"); ok {
		return toggleAction(rest)
	}
	if rest, ok := cut(data, "set_gender_"); ok {
		return Action{Kind: KindSetGender, Value: rest}
	}
	if rest, ok := cut(data, "set_race_"); ok {
		return Action{Kind: KindSetRace, Value: rest}
	}
	if rest, ok := cut(data, "set_education_"); ok {
		return Action{Kind: KindSetEducation, Value: rest}
	}
	if rest, ok := cut(data, "set_rate_"); ok {
		for _, level := range model.Levels {
			if amount, ok := cut(rest, level+"_"); ok {
				return Action{Kind: KindSetRate, Level: level, Value: amount}
			}
		}
		return Action{Kind: KindUnknown}
	}
	if rest, ok := cut(data, "filter_level_"); ok {
		return Action{Kind: KindFilterLevel, Value: rest}
	}
	if rest, ok := cut(data, "filter_location_"); ok {
		return Action{Kind: KindFilterLocation, Value: rest}
	}
	if rest, ok := cut(data, "withdraw_"); ok {
		if id, ok := cut(rest, "yes_"); ok {
			return Action{Kind: KindWithdrawConfirm, AssignmentID: id}
		}
		return Action{Kind: KindWithdrawAsk, AssignmentID: rest}
	}
	if rest, ok := cut(data, "view_app_"); ok {
		return Action{Kind: KindViewApplication, AssignmentID: rest}
	}

	return Action{Kind: KindUnknown}
}

func cut(data, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(data, prefix)
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

func pageAction(kind Kind, rest string) Action {
	page, err := strconv.Atoi(rest)
	if err != nil {
		return Action{Kind: KindUnknown}
	}
	return Action{Kind: kind, Page: page}
}

// toggleAction resolves the toggle families: a region flag
// (toggle_location_<region>), one of the six day-part flags
// (toggle_<timeslot>), or a per-level subject flag
// (toggle_<level>_<subject>).
func toggleAction(rest string) Action {
	if region, ok := cut(rest, "location_"); ok {
		return Action{Kind: KindToggleLocation, Region: region}
	}
	if model.IsSlotName(rest) {
		return Action{Kind: KindToggleSlot, Slot: rest}
	}
	for _, level := range model.Levels {
		if subject, ok := cut(rest, level+"_"); ok {
			return Action{Kind: KindToggleSubject, Level: level, Subject: subject}
		}
	}
	return Action{Kind: KindUnknown}
}

// splitPair parses "<assignmentID>_<tutorID>". Assignment IDs are UUIDs and
// never contain underscores, so the last underscore is the separator.
func splitPair(rest string) (string, int64, bool) {
	idx := strings.LastIndexByte(rest, '_')
	if idx <= 0 || idx == len(rest)-1 {
		return "", 0, false
	}
	tutorID, err := strconv.ParseInt(rest[idx+1:], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return rest[:idx], tutorID, true
}

// maxTokenLen is the platform's hard limit on callback data.
const maxTokenLen = 64

// Truncate clips a token to the platform limit before send.
func Truncate(data string) string {
	if len(data) > maxTokenLen {
		return data[:maxTokenLen]
	}
	return data
}

// Token builders used by the keyboards.

func DataAssignPage(page int) string    { return fmt.Sprintf("assign_page_%d", page) }
func DataAppsPage(page int) string      { return fmt.Sprintf("apps_page_%d", page) }
func DataApply(id string) string        { return Truncate("apply_" + id) }
func DataWithdrawAsk(id string) string  { return Truncate("withdraw_" + id) }
func DataWithdrawYes(id string) string  { return Truncate("withdraw_yes_" + id) }
func DataViewApp(id string) string      { return Truncate("view_app_" + id) }
func DataMenuLevel(level string) string { return "menu_level_" + level }
func DataEditField(field string) string { return "edit_" + field }

func DataToggleSubject(level, subject string) string {
	return Truncate("toggle_" + level + "_" + subject)
}
func DataToggleSlot(slot string) string       { return "toggle_" + slot }
func DataToggleLocation(region string) string { return "toggle_location_" + region }

func DataSetGender(v string) string    { return "set_gender_" + v }
func DataSetRace(v string) string      { return "set_race_" + v }
func DataSetEducation(v string) string { return "set_education_" + v }
func DataSetRate(level, amount string) string {
	return Truncate("set_rate_" + level + "_" + amount)
}
func DataFilterLevel(v string) string    { return "filter_level_" + v }
func DataFilterLocation(v string) string { return "filter_location_" + v }

func DataAdminAccept(assignmentID string, tutorID int64) string {
	return Truncate(fmt.Sprintf("admin_accept_%s_%d", assignmentID, tutorID))
}
func DataAdminReject(assignmentID string, tutorID int64) string {
	return Truncate(fmt.Sprintf("admin_reject_%s_%d", assignmentID, tutorID))
}
