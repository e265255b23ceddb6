package dto

// Constraint discriminators accepted on the wire. The encoder dispatches on
// these tags; unknown tags are rejected during validation.
const (
	TimeConstraintBasicCompulsory = "basic_compulsory_time"
	TimeConstraintMinDaysBetween  = "min_days_between_activities"
	TimeConstraintTeacherNotAvail = "teacher_not_available"

	SpaceConstraintBasicCompulsory = "basic_compulsory_space"
)

// RunMetadata identifies the timetable run being solved.
type RunMetadata struct {
	TimetableID     string `json:"timetableId" validate:"required"`
	Semester        string `json:"semester" validate:"required"`
	InstitutionName string `json:"institutionName"`
	Comments        string `json:"comments"`
}

// CalendarDay is one teaching day; Index is the authoritative ordinal.
type CalendarDay struct {
	Index    int    `json:"index" validate:"min=0"`
	Name     string `json:"name" validate:"required"`
	LongName string `json:"longName"`
}

// CalendarHour is one teaching block within a day.
type CalendarHour struct {
	Index    int    `json:"index" validate:"min=0"`
	Name     string `json:"name" validate:"required"`
	LongName string `json:"longName"`
}

// Calendar defines the scheduling timeline. Empty lists fall back to a
// deterministic five-day / five-hour default during encoding.
type Calendar struct {
	Days  []CalendarDay  `json:"days" validate:"dive"`
	Hours []CalendarHour `json:"hours" validate:"dive"`
}

// Subject as presented to the solver (by name and code).
type Subject struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Comments string `json:"comments"`
}

// Teacher as presented to the solver. Only the name crosses the wire, so two
// teachers sharing a name are indistinguishable to the solver.
type Teacher struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	TargetHours int    `json:"targetHours" validate:"min=0"`
	Comments    string `json:"comments"`
}

// StudentGroup belongs to a StudentYear.
type StudentGroup struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Students int    `json:"students" validate:"min=0"`
}

// StudentYear owns zero or more groups.
type StudentYear struct {
	ID            string         `json:"id" validate:"required"`
	Name          string         `json:"name" validate:"required"`
	TotalStudents int            `json:"totalStudents" validate:"min=0"`
	Groups        []StudentGroup `json:"groups" validate:"dive"`
}

// StudentsReference points an activity at either a year or a group.
type StudentsReference struct {
	Type string `json:"type" validate:"required,oneof=year group"`
	ID   string `json:"id" validate:"required"`
}

// Activity is one teachable unit to place on the timeline.
type Activity struct {
	ID                string            `json:"id" validate:"required"`
	GroupID           string            `json:"groupId" validate:"required"`
	TeacherID         string            `json:"teacherId" validate:"required"`
	SubjectID         string            `json:"subjectId" validate:"required"`
	StudentsReference StudentsReference `json:"studentsReference"`
	Duration          int               `json:"duration" validate:"min=1"`
	TotalDuration     int               `json:"totalDuration" validate:"min=1"`
	Active            *bool             `json:"active"`
	Comments          string            `json:"comments"`
}

// IsActive defaults to true when the flag is omitted.
func (a Activity) IsActive() bool {
	return a.Active == nil || *a.Active
}

// NotAvailableSlot marks one calendar slot as blocked for a teacher.
type NotAvailableSlot struct {
	DayIndex  int `json:"dayIndex" validate:"min=0"`
	HourIndex int `json:"hourIndex" validate:"min=0"`
}

// TimeConstraint is the closed union of supported time constraints,
// discriminated by Type. Variant-specific fields are ignored for other tags.
type TimeConstraint struct {
	Type   string  `json:"type" validate:"required,oneof=basic_compulsory_time min_days_between_activities teacher_not_available"`
	Weight float64 `json:"weight" validate:"min=0,max=100"`
	Active *bool   `json:"active"`

	// min_days_between_activities
	MinDays              int      `json:"minDays" validate:"min=0"`
	ActivityIDs          []string `json:"activityIds"`
	ConsecutiveIfSameDay bool     `json:"consecutiveIfSameDay"`

	// teacher_not_available
	TeacherID         string             `json:"teacherId"`
	NotAvailableSlots []NotAvailableSlot `json:"notAvailableSlots" validate:"dive"`
}

// IsActive defaults to true when the flag is omitted.
func (c TimeConstraint) IsActive() bool {
	return c.Active == nil || *c.Active
}

// SpaceConstraint is the closed union of supported space constraints.
type SpaceConstraint struct {
	Type   string  `json:"type" validate:"required,oneof=basic_compulsory_space"`
	Weight float64 `json:"weight" validate:"min=0,max=100"`
	Active *bool   `json:"active"`
}

// IsActive defaults to true when the flag is omitted.
func (c SpaceConstraint) IsActive() bool {
	return c.Active == nil || *c.Active
}

// Building groups rooms.
type Building struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Comments string `json:"comments"`
}

// Room optionally belongs to a building; capacity defaults to 0.
type Room struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	BuildingID string `json:"buildingId"`
	Capacity   int    `json:"capacity" validate:"min=0"`
	Comments   string `json:"comments"`
}

// Space bundles the physical resources and their constraints.
type Space struct {
	Buildings        []Building        `json:"buildings" validate:"dive"`
	Rooms            []Room            `json:"rooms" validate:"dive"`
	SpaceConstraints []SpaceConstraint `json:"spaceConstraints" validate:"dive"`
}

// RunTimetableRequest is the fully consolidated scheduling problem. Entity
// legality is validated upstream; here only structural rules apply.
type RunTimetableRequest struct {
	Metadata        RunMetadata      `json:"metadata"`
	Calendar        Calendar         `json:"calendar"`
	Subjects        []Subject        `json:"subjects" validate:"dive"`
	Teachers        []Teacher        `json:"teachers" validate:"dive"`
	StudentYears    []StudentYear    `json:"studentYears" validate:"dive"`
	Activities      []Activity       `json:"activities" validate:"dive"`
	TimeConstraints []TimeConstraint `json:"timeConstraints" validate:"dive"`
	Space           Space            `json:"space"`
}

// ActivityScheduleEntry is one decoded placement from the solver output.
type ActivityScheduleEntry struct {
	ID            ScheduleEntryID `json:"id"`
	Subject       string          `json:"subject"`
	TimeSlots     []int           `json:"timeSlots"`
	StudentsCount int             `json:"studentsCount"`
}

// RoomSummary lists a room with its resolved building display name.
type RoomSummary struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Building string `json:"building"`
}

// RunTimetableResponse summarises one solver run.
type RunTimetableResponse struct {
	Status             string                  `json:"status"`
	Semester           string                  `json:"semester"`
	TimetableID        string                  `json:"timetableId"`
	InputFile          string                  `json:"fetInputFile"`
	OutputDirectory    string                  `json:"outputDirectory"`
	Stdout             string                  `json:"stdout"`
	Stderr             string                  `json:"stderr"`
	ActivitiesSchedule []ActivityScheduleEntry `json:"activitiesSchedule"`
	Rooms              []RoomSummary           `json:"rooms"`
}

// Export content selectors.
const (
	ExportContentSchedule = "schedule"
	ExportContentRooms    = "rooms"
)

// ExportTimetableRequest renders a previously returned run summary to a file.
// Content defaults to the activity schedule. When the calendar is provided,
// time slots render as day and hour names instead of bare ordinals.
type ExportTimetableRequest struct {
	Format   string                  `json:"format" validate:"required,oneof=csv pdf"`
	Content  string                  `json:"content" validate:"omitempty,oneof=schedule rooms"`
	Title    string                  `json:"title"`
	Calendar Calendar                `json:"calendar"`
	Schedule []ActivityScheduleEntry `json:"schedule"`
	Rooms    []RoomSummary           `json:"rooms"`
}
