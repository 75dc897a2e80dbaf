package fogbugz

import "time"

// Case is a search or list result row. Only the requested columns are
// populated by the server; the rest keep their zero values.
type Case struct {
	CaseID    uint64 `json:"ixBug"`
	ProjectID uint64 `json:"ixProject"`
	Project   string `json:"sProject"`
	Title     string `json:"sTitle"`
}

// Attachment is a file attached to a case event.
type Attachment struct {
	FileName string `json:"sFileName"`
	URL      string `json:"sURL"`
}

// Event is one entry of a case history.
type Event struct {
	Type         EventType    `json:"evt"`
	Description  string       `json:"evtDescription"`
	Date         time.Time    `json:"dt"`
	PersonID     uint64       `json:"ixPerson"`
	Person       string       `json:"sPerson"`
	AssignedToID *uint64      `json:"ixPersonAssignedTo"`
	Attachments  []Attachment `json:"attachments,omitempty"`
	Content      string       `json:"s"`
}

// CaseDetails is a full case record including its event history.
// StatusID is the raw ixStatus value; status ids are configured per
// installation, resolve them through OrgService.ListStatuses.
type CaseDetails struct {
	CaseID       uint64   `json:"ixBug"`
	Title        string   `json:"sTitle"`
	Project      string   `json:"sProject"`
	IsOpen       bool     `json:"fOpen"`
	Area         string   `json:"sArea"`
	StatusID     int      `json:"ixStatus"`
	Priority     Priority `json:"ixPriority"`
	Category     Category `json:"ixCategory"`
	Events       []Event  `json:"events"`
	CustomFields []string `json:"customFields,omitempty"`
}

// Project is a project record.
type Project struct {
	ID         uint64 `json:"ixProject"`
	Name       string `json:"sProject"`
	OwnerID    uint64 `json:"ixPersonOwner"`
	Owner      string `json:"sPersonOwner"`
	Email      string `json:"sEmail"`
	Phone      string `json:"sPhone"`
	IsInbox    bool   `json:"fInbox"`
	WorkflowID uint64 `json:"ixWorkflow"`
	IsDeleted  bool   `json:"fDeleted"`
}

// Person is a user account.
type Person struct {
	ID                   uint64 `json:"ixPerson"`
	FullName             string `json:"sFullName"`
	Email                string `json:"sEmail"`
	Phone                string `json:"sPhone"`
	IsAdministrator      bool   `json:"fAdministrator"`
	IsCommunity          bool   `json:"fCommunity"`
	IsVirtual            bool   `json:"fVirtual"`
	IsDeleted            bool   `json:"fDeleted"`
	NotificationsEnabled bool   `json:"fNotify"`
	Homepage             string `json:"sHomepage"`
	Locale               string `json:"sLocale"`
	Language             string `json:"sLanguage"`
	Timezone             string `json:"sTimeZoneKey"`
}

// Area is a subdivision of a project.
type Area struct {
	ID        uint64 `json:"ixArea"`
	Name      string `json:"sArea"`
	ProjectID uint64 `json:"ixProject"`
	OwnerID   uint64 `json:"ixPersonOwner"`
	Owner     string `json:"sPersonOwner"`
	Type      uint64 `json:"nType"`
}

// CategoryInfo is a case category as configured on the server.
type CategoryInfo struct {
	ID              uint64 `json:"ixCategory"`
	Name            string `json:"sCategory"`
	Plural          string `json:"sPlural"`
	DefaultStatusID uint64 `json:"ixStatusDefault"`
	IsScheduleItem  bool   `json:"fIsScheduleItem"`
}

// PriorityInfo is a priority level as configured on the server.
type PriorityInfo struct {
	ID   uint64 `json:"ixPriority"`
	Name string `json:"sPriority"`
}

// StatusInfo is a workflow status as configured on the server.
type StatusInfo struct {
	ID          uint64 `json:"ixStatus"`
	Name        string `json:"sStatus"`
	CategoryID  uint64 `json:"ixCategory"`
	IsResolved  bool   `json:"fResolved"`
	IsDuplicate bool   `json:"fDuplicate"`
	IsDeleted   bool   `json:"fDeleted"`
	Order       int    `json:"iOrder"`
}

// Milestone is a FixFor target.
type Milestone struct {
	ID        uint64  `json:"ixFixFor"`
	Name      string  `json:"sFixFor"`
	ProjectID uint64  `json:"ixProject"`
	IsDeleted bool    `json:"fDeleted"`
	Date      *string `json:"dt"`
	StartDate *string `json:"dtStart"`
	StartNote string  `json:"sStartNote"`
}

// SavedFilter is a stored case filter. Type is "default", "builtin",
// "saved" or "shared" depending on where the filter came from.
type SavedFilter struct {
	ID          string
	Type        string
	Name        string
	Description string
}

// TimeInterval is one tracked work interval on a case.
type TimeInterval struct {
	ID        uint64    `json:"ixInterval"`
	PersonID  uint64    `json:"ixPerson"`
	CaseID    uint64    `json:"ixBug"`
	Start     time.Time `json:"dtStart"`
	End       time.Time `json:"dtEnd"`
	Title     string    `json:"sTitle"`
	IsDeleted bool      `json:"fDeleted"`
}

// CaseHours is per-case time tracking data.
type CaseHours struct {
	CaseID           uint64   `json:"ixBug"`
	Title            string   `json:"sTitle"`
	Project          string   `json:"sProject"`
	HoursElapsed     *float64 `json:"hrsElapsed"`
	HoursCurrentEst  *float64 `json:"hrsCurrEst"`
	HoursOriginalEst *float64 `json:"hrsOrigEst"`
	AssignedTo       string   `json:"sPersonAssignedTo"`
}

// ProjectHours is time tracking data aggregated over one project.
type ProjectHours struct {
	Project       string  `json:"project"`
	TotalElapsed  float64 `json:"total_elapsed"`
	TotalEstimate float64 `json:"total_estimate"`
	CaseCount     int     `json:"case_count"`
}
