package fogbugz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Column identifies a case field that can be requested from the API.
// The constant values are the wire names the API expects in "cols".
type Column string

const (
	ColCaseID       Column = "ixBug"
	ColTitle        Column = "sTitle"
	ColBody         Column = "sHtmlBody"
	ColEvents       Column = "events"
	ColProject      Column = "sProject"
	ColProjectID    Column = "ixProject"
	ColArea         Column = "sArea"
	ColPriority     Column = "ixPriority"
	ColStatus       Column = "ixStatus"
	ColCategory     Column = "ixCategory"
	ColIsOpen       Column = "fOpen"
	ColCustomFields Column = "customFields"
	ColAssignedTo   Column = "sPersonAssignedTo"
	ColHoursElapsed Column = "hrsElapsed"
	ColHoursCurrEst Column = "hrsCurrEst"
	ColHoursOrigEst Column = "hrsOrigEst"
)

// columnAliases maps lowercase friendly names and wire names to columns.
var columnAliases = map[string]Column{
	"ixbug":             ColCaseID,
	"caseid":            ColCaseID,
	"stitle":            ColTitle,
	"title":             ColTitle,
	"shtmlbody":         ColBody,
	"body":              ColBody,
	"events":            ColEvents,
	"sproject":          ColProject,
	"project":           ColProject,
	"ixproject":         ColProjectID,
	"projectid":         ColProjectID,
	"sarea":             ColArea,
	"area":              ColArea,
	"ixpriority":        ColPriority,
	"priority":          ColPriority,
	"ixstatus":          ColStatus,
	"status":            ColStatus,
	"ixcategory":        ColCategory,
	"category":          ColCategory,
	"fopen":             ColIsOpen,
	"isopen":            ColIsOpen,
	"customfields":      ColCustomFields,
	"spersonassignedto": ColAssignedTo,
	"assignedto":        ColAssignedTo,
	"hrselapsed":        ColHoursElapsed,
	"hourselapsed":      ColHoursElapsed,
	"hrscurrest":        ColHoursCurrEst,
	"hrsorigest":        ColHoursOrigEst,
}

// ParseColumn resolves a wire name or friendly alias (case-insensitive)
// to a Column.
func ParseColumn(s string) (Column, error) {
	if c, ok := columnAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("fogbugz: unknown column %q", s)
}

func columnNames(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = string(c)
	}
	return out
}

// Category classifies a case. Wire representation is the ixCategory
// integer.
type Category int

const (
	CategoryBug       Category = 1
	CategoryFeature   Category = 2
	CategoryInquiry   Category = 3
	CategorySchedule  Category = 4
	CategoryReport    Category = 5
	CategoryEmergency Category = 6
	CategoryReview    Category = 7
)

func (c Category) String() string {
	switch c {
	case CategoryBug:
		return "Bug"
	case CategoryFeature:
		return "Feature"
	case CategoryInquiry:
		return "Inquiry"
	case CategorySchedule:
		return "Schedule"
	case CategoryReport:
		return "Report"
	case CategoryEmergency:
		return "Emergency"
	case CategoryReview:
		return "Review"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// UnmarshalJSON rejects category values outside the known range.
func (c *Category) UnmarshalJSON(b []byte) error {
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	if v < int(CategoryBug) || v > int(CategoryReview) {
		return fmt.Errorf("invalid category value: %d", v)
	}
	*c = Category(v)
	return nil
}

// Priority is a case priority level. Wire representation is the
// ixPriority integer; lower is more urgent.
type Priority int

const (
	PriorityBlocker       Priority = 1
	PriorityMuyImportante Priority = 2
	PriorityShouldDo      Priority = 3
	PriorityFixIfTime     Priority = 4
	PriorityOhWell        Priority = 5
	PriorityWhoCares      Priority = 6
	PriorityDontFix       Priority = 7
)

func (p Priority) String() string {
	switch p {
	case PriorityBlocker:
		return "Blocker"
	case PriorityMuyImportante:
		return "MuyImportante"
	case PriorityShouldDo:
		return "ShouldDo"
	case PriorityFixIfTime:
		return "FixIfTime"
	case PriorityOhWell:
		return "OhWell"
	case PriorityWhoCares:
		return "WhoCares"
	case PriorityDontFix:
		return "DontFix"
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// UnmarshalJSON rejects priority values outside the known range.
func (p *Priority) UnmarshalJSON(b []byte) error {
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("priority: %w", err)
	}
	if v < int(PriorityBlocker) || v > int(PriorityDontFix) {
		return fmt.Errorf("invalid priority value: %d", v)
	}
	*p = Priority(v)
	return nil
}

// EventType classifies a case event. Wire representation is the evt
// integer.
type EventType int

const (
	EventOpened            EventType = 1
	EventEdited            EventType = 2
	EventAssigned          EventType = 3
	EventReactivated       EventType = 4
	EventReopened          EventType = 5
	EventClosed            EventType = 6
	EventMoved             EventType = 7
	EventUnknown           EventType = 8
	EventReplied           EventType = 9
	EventForwarded         EventType = 10
	EventReceived          EventType = 11
	EventSorted            EventType = 12
	EventNotSorted         EventType = 13
	EventResolved          EventType = 14
	EventEmailed           EventType = 15
	EventReleaseNoted      EventType = 16
	EventDeletedAttachment EventType = 17
)

var eventTypeNames = map[EventType]string{
	EventOpened:            "Opened",
	EventEdited:            "Edited",
	EventAssigned:          "Assigned",
	EventReactivated:       "Reactivated",
	EventReopened:          "Reopened",
	EventClosed:            "Closed",
	EventMoved:             "Moved",
	EventUnknown:           "Unknown",
	EventReplied:           "Replied",
	EventForwarded:         "Forwarded",
	EventReceived:          "Received",
	EventSorted:            "Sorted",
	EventNotSorted:         "NotSorted",
	EventResolved:          "Resolved",
	EventEmailed:           "Emailed",
	EventReleaseNoted:      "ReleaseNoted",
	EventDeletedAttachment: "DeletedAttachment",
}

func (e EventType) String() string {
	if name, ok := eventTypeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(e))
}

// UnmarshalJSON maps unrecognized event codes to EventUnknown. Servers
// grow new event types and decoding a case must not fail over one.
func (e *EventType) UnmarshalJSON(b []byte) error {
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("event type: %w", err)
	}
	if _, ok := eventTypeNames[EventType(v)]; !ok {
		*e = EventUnknown
		return nil
	}
	*e = EventType(v)
	return nil
}
