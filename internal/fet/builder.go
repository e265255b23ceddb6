package fet

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/noah-isme/sgh-fet-agent/internal/dto"
)

const (
	defaultMode            = "Official"
	defaultInstitutionName = "SGH"
	defaultConstraintWt    = 100.0
)

// DocumentBuilder turns a consolidated request into the FET input document.
// Encoding never fails on dangling references: unresolved teacher, subject or
// building ids are written through as display values so the solver still
// receives a syntactically complete file.
type DocumentBuilder struct{}

// NewDocumentBuilder constructs a builder.
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{}
}

// lookups caches the id-to-display-name tables derived from the request.
type lookups struct {
	teacherNames  map[string]string
	subjectNames  map[string]string
	buildingNames map[string]string
}

func newLookups(req dto.RunTimetableRequest) *lookups {
	l := &lookups{
		teacherNames:  make(map[string]string, len(req.Teachers)),
		subjectNames:  make(map[string]string, len(req.Subjects)),
		buildingNames: make(map[string]string, len(req.Space.Buildings)),
	}
	for _, teacher := range req.Teachers {
		l.teacherNames[teacher.ID] = teacher.Name
	}
	for _, subject := range req.Subjects {
		l.subjectNames[subject.ID] = subject.Name
	}
	for _, building := range req.Space.Buildings {
		l.buildingNames[building.ID] = building.Name
	}
	return l
}

func (l *lookups) teacherName(id string) string {
	if name, ok := l.teacherNames[id]; ok {
		return name
	}
	return id
}

func (l *lookups) subjectName(id string) string {
	if name, ok := l.subjectNames[id]; ok {
		return name
	}
	return id
}

func (l *lookups) buildingName(id string) string {
	if id == "" {
		return ""
	}
	if name, ok := l.buildingNames[id]; ok {
		return name
	}
	return id
}

// Build produces the full .fet document for the request. The calendar index
// must be the one later handed to the decoder so both sides share the same
// effective day/hour ordering.
func (b *DocumentBuilder) Build(req dto.RunTimetableRequest, calendar *CalendarIndex) ([]byte, error) {
	lookup := newLookups(req)

	doc := fetDocument{
		Version:          fetVersion,
		Mode:             defaultMode,
		InstitutionName:  institutionName(req.Metadata),
		Comments:         documentComments(req.Metadata),
		Days:             buildDaysList(calendar),
		Hours:            buildHoursList(calendar),
		Students:         buildStudentsList(req.StudentYears),
		Teachers:         buildTeachersList(req.Teachers),
		Subjects:         buildSubjectsList(req.Subjects),
		Activities:       buildActivitiesList(req.Activities, lookup),
		Buildings:        buildBuildingsList(req.Space.Buildings),
		Rooms:            buildRoomsList(req.Space.Rooms, lookup),
		TimeConstraints:  buildTimeConstraints(req.TimeConstraints, lookup, calendar),
		SpaceConstraints: buildSpaceConstraints(req.Space.SpaceConstraints),
	}

	body, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("marshal fet document: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

func institutionName(meta dto.RunMetadata) string {
	if meta.InstitutionName != "" {
		return meta.InstitutionName
	}
	return defaultInstitutionName
}

func documentComments(meta dto.RunMetadata) string {
	if meta.Comments != "" {
		return meta.Comments
	}
	return fmt.Sprintf("Generated automatically for %s", meta.Semester)
}

func buildDaysList(calendar *CalendarIndex) daysList {
	days := calendar.Days()
	list := daysList{NumberOfDays: len(days), Days: make([]dayNode, 0, len(days))}
	for _, day := range days {
		list.Days = append(list.Days, dayNode{Name: displayName(day.LongName, day.Name)})
	}
	return list
}

func buildHoursList(calendar *CalendarIndex) hoursList {
	hours := calendar.Hours()
	list := hoursList{NumberOfHours: len(hours), Hours: make([]hourNode, 0, len(hours))}
	for _, hour := range hours {
		list.Hours = append(list.Hours, hourNode{Name: displayName(hour.LongName, hour.Name)})
	}
	return list
}

// buildStudentsList emits the three-level hierarchy FET requires. The domain
// only models years and groups, so every group gets one synthetic subgroup
// mirroring its headcount.
func buildStudentsList(years []dto.StudentYear) studentsList {
	list := studentsList{Years: make([]yearNode, 0, len(years))}
	for _, year := range years {
		node := yearNode{
			Name:             year.ID,
			NumberOfStudents: year.TotalStudents,
			Comments:         year.Name,
			// FET accepts an explicit zero here; groups are emitted as direct
			// children rather than through a Category block.
			NumberOfCategories: 0,
			Separator:          " ",
			Groups:             make([]groupNode, 0, len(year.Groups)),
		}
		for _, group := range year.Groups {
			node.Groups = append(node.Groups, groupNode{
				Name:             group.ID,
				NumberOfStudents: group.Students,
				Comments:         group.Name,
				Subgroups: []subgroupNode{{
					Name:             group.ID + "-sub",
					NumberOfStudents: group.Students,
					Comments:         group.Name,
				}},
			})
		}
		list.Years = append(list.Years, node)
	}
	return list
}

// buildTeachersList leaves Qualified_Subjects blank: teacher-subject
// eligibility is not encoded by this pipeline.
func buildTeachersList(teachers []dto.Teacher) teachersList {
	list := teachersList{Teachers: make([]teacherNode, 0, len(teachers))}
	for _, teacher := range teachers {
		list.Teachers = append(list.Teachers, teacherNode{
			Name:                teacher.Name,
			TargetNumberOfHours: teacher.TargetHours,
			Comments:            teacher.Comments,
		})
	}
	return list
}

func buildSubjectsList(subjects []dto.Subject) subjectsList {
	list := subjectsList{Subjects: make([]subjectNode, 0, len(subjects))}
	for _, subject := range subjects {
		list.Subjects = append(list.Subjects, subjectNode{
			Name:     subject.Name,
			Code:     subject.Code,
			Comments: subject.Comments,
		})
	}
	return list
}

func buildActivitiesList(activities []dto.Activity, lookup *lookups) activitiesList {
	list := activitiesList{Activities: make([]activityNode, 0, len(activities))}
	for _, activity := range activities {
		list.Activities = append(list.Activities, activityNode{
			Teacher:         lookup.teacherName(activity.TeacherID),
			Subject:         lookup.subjectName(activity.SubjectID),
			Students:        activity.StudentsReference.ID,
			Duration:        activity.Duration,
			TotalDuration:   activity.TotalDuration,
			ID:              activity.ID,
			ActivityGroupID: activity.GroupID,
			Active:          activity.IsActive(),
			Comments:        activity.Comments,
		})
	}
	return list
}

func buildBuildingsList(buildings []dto.Building) buildingsList {
	list := buildingsList{Buildings: make([]buildingNode, 0, len(buildings))}
	for _, building := range buildings {
		list.Buildings = append(list.Buildings, buildingNode{
			Name:      building.Name,
			ShortName: truncateRunes(building.Name, 10),
			Comments:  building.Comments,
		})
	}
	return list
}

func buildRoomsList(rooms []dto.Room, lookup *lookups) roomsList {
	list := roomsList{Rooms: make([]roomNode, 0, len(rooms))}
	for _, room := range rooms {
		list.Rooms = append(list.Rooms, roomNode{
			Name:     room.Name,
			LongName: room.Name,
			Code:     room.ID,
			Building: lookup.buildingName(room.BuildingID),
			Capacity: room.Capacity,
			Comments: room.Comments,
		})
	}
	return list
}

// buildTimeConstraints dispatches over the closed constraint union. An empty
// caller list still yields the basic compulsory constraint at full weight;
// FET needs at least a baseline constraint set to produce any schedule.
func buildTimeConstraints(constraints []dto.TimeConstraint, lookup *lookups, calendar *CalendarIndex) timeConstraintsList {
	if len(constraints) == 0 {
		return timeConstraintsList{Constraints: []any{
			constraintBasicCompulsoryTimeNode{
				WeightPercentage: formatWeight(defaultConstraintWt),
				Active:           true,
			},
		}}
	}

	list := timeConstraintsList{Constraints: make([]any, 0, len(constraints))}
	for _, constraint := range constraints {
		switch constraint.Type {
		case dto.TimeConstraintBasicCompulsory:
			list.Constraints = append(list.Constraints, constraintBasicCompulsoryTimeNode{
				WeightPercentage: formatWeight(constraint.Weight),
				Active:           constraint.IsActive(),
			})
		case dto.TimeConstraintMinDaysBetween:
			list.Constraints = append(list.Constraints, constraintMinDaysBetweenActivitiesNode{
				WeightPercentage:     formatWeight(constraint.Weight),
				ConsecutiveIfSameDay: constraint.ConsecutiveIfSameDay,
				NumberOfActivities:   len(constraint.ActivityIDs),
				ActivityIDs:          constraint.ActivityIDs,
				MinDays:              constraint.MinDays,
				Active:               constraint.IsActive(),
			})
		case dto.TimeConstraintTeacherNotAvail:
			node := constraintTeacherNotAvailableNode{
				WeightPercentage:          formatWeight(constraint.Weight),
				Teacher:                   lookup.teacherName(constraint.TeacherID),
				NumberOfNotAvailableTimes: len(constraint.NotAvailableSlots),
				Active:                    constraint.IsActive(),
			}
			for _, slot := range constraint.NotAvailableSlots {
				node.NotAvailableTimes = append(node.NotAvailableTimes, notAvailableTimeNode{
					Day:  calendar.DayName(slot.DayIndex),
					Hour: calendar.HourName(slot.HourIndex),
				})
			}
			list.Constraints = append(list.Constraints, node)
		}
	}
	return list
}

func buildSpaceConstraints(constraints []dto.SpaceConstraint) spaceConstraintsList {
	if len(constraints) == 0 {
		return spaceConstraintsList{Constraints: []any{
			constraintBasicCompulsorySpaceNode{
				WeightPercentage: formatWeight(defaultConstraintWt),
				Active:           true,
			},
		}}
	}

	list := spaceConstraintsList{Constraints: make([]any, 0, len(constraints))}
	for _, constraint := range constraints {
		switch constraint.Type {
		case dto.SpaceConstraintBasicCompulsory:
			list.Constraints = append(list.Constraints, constraintBasicCompulsorySpaceNode{
				WeightPercentage: formatWeight(constraint.Weight),
				Active:           constraint.IsActive(),
			})
		}
	}
	return list
}

// formatWeight prints integral weights without a trailing ".0".
func formatWeight(weight float64) string {
	return strconv.FormatFloat(weight, 'f', -1, 64)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
