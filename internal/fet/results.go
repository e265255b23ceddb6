package fet

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/noah-isme/sgh-fet-agent/internal/dto"
)

const (
	timetableFolderName  = "timetables"
	activitiesFileSuffix = "_activities.xml"
)

// LocateTimetableDir finds the solver output directory for one run: the most
// recently modified child of <workDir>/timetables whose name starts with the
// input file's stem. The boolean is false when there is no result, which is a
// legitimate outcome (the solver writes nothing when it cannot satisfy the
// hard constraints), not an error.
func LocateTimetableDir(workDir, stem string) (string, bool) {
	baseDir := filepath.Join(workDir, timetableFolderName)
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return "", false
	}

	var newest string
	var newestMod int64
	found := false
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), stem) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		mod := info.ModTime().UnixNano()
		if !found || mod > newestMod {
			newest = filepath.Join(baseDir, entry.Name())
			newestMod = mod
			found = true
		}
	}
	return newest, found
}

type outputActivity struct {
	ID   string `xml:"Id"`
	Day  string `xml:"Day"`
	Hour string `xml:"Hour"`
}

// activitiesOutput accepts any root element name; only the direct Activity
// children matter.
type activitiesOutput struct {
	Activities []outputActivity `xml:"Activity"`
}

type activityMetadata struct {
	subject       string
	duration      int
	studentsCount int
}

// ResultDecoder maps solver output files back onto the original request.
// Every per-entry anomaly (blank id, unknown activity, unresolvable day or
// hour name) is skipped silently: a partially decodable output is preferable
// to failing the whole request.
type ResultDecoder struct{}

// NewResultDecoder constructs a decoder.
func NewResultDecoder() *ResultDecoder {
	return &ResultDecoder{}
}

// DecodeSchedule reads the per-activity output file for the run identified by
// stem and expands each placement into contiguous time slots. A missing or
// malformed output yields an empty schedule.
func (d *ResultDecoder) DecodeSchedule(req dto.RunTimetableRequest, calendar *CalendarIndex, workDir, stem string) []dto.ActivityScheduleEntry {
	entries := make([]dto.ActivityScheduleEntry, 0)

	timetableDir, ok := LocateTimetableDir(workDir, stem)
	if !ok {
		return entries
	}

	activitiesFile, ok := findActivitiesFile(timetableDir)
	if !ok {
		return entries
	}

	hoursPerDay := calendar.HoursPerDay()
	if hoursPerDay <= 0 {
		// Unreachable after calendar fallback; kept as defense in depth.
		return entries
	}

	metadata := buildActivityMetadata(req)

	raw, err := os.ReadFile(activitiesFile)
	if err != nil {
		return entries
	}
	var output activitiesOutput
	if err := xml.Unmarshal(raw, &output); err != nil {
		return entries
	}

	for _, node := range output.Activities {
		activityID := strings.TrimSpace(node.ID)
		if activityID == "" {
			continue
		}
		meta, known := metadata[activityID]
		if !known {
			continue
		}

		dayName := strings.TrimSpace(node.Day)
		hourName := strings.TrimSpace(node.Hour)
		if dayName == "" || hourName == "" {
			continue
		}
		dayIndex, ok := calendar.DayOrdinal(dayName)
		if !ok {
			continue
		}
		hourIndex, ok := calendar.HourOrdinal(hourName)
		if !ok {
			continue
		}

		// Duration comes from the request; the output file does not carry it.
		slotStart := dayIndex*hoursPerDay + hourIndex
		timeSlots := make([]int, meta.duration)
		for offset := range timeSlots {
			timeSlots[offset] = slotStart + offset
		}

		entries = append(entries, dto.ActivityScheduleEntry{
			ID:            dto.ScheduleEntryID(activityID),
			Subject:       meta.subject,
			TimeSlots:     timeSlots,
			StudentsCount: meta.studentsCount,
		})
	}

	return entries
}

// findActivitiesFile returns the lexicographically first match when several
// files share the suffix. Arbitrary, but deterministic.
func findActivitiesFile(timetableDir string) (string, bool) {
	entries, err := os.ReadDir(timetableDir)
	if err != nil {
		return "", false
	}
	var matches []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), activitiesFileSuffix) {
			continue
		}
		matches = append(matches, entry.Name())
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return filepath.Join(timetableDir, matches[0]), true
}

func buildActivityMetadata(req dto.RunTimetableRequest) map[string]activityMetadata {
	subjectNames := make(map[string]string, len(req.Subjects))
	for _, subject := range req.Subjects {
		subjectNames[subject.ID] = subject.Name
	}

	groupStudents := make(map[string]int)
	yearStudents := make(map[string]int, len(req.StudentYears))
	for _, year := range req.StudentYears {
		yearStudents[year.ID] = year.TotalStudents
		for _, group := range year.Groups {
			groupStudents[group.ID] = group.Students
		}
	}

	metadata := make(map[string]activityMetadata, len(req.Activities))
	for _, activity := range req.Activities {
		activityID := strings.TrimSpace(activity.ID)
		if activityID == "" {
			continue
		}
		subjectName, ok := subjectNames[activity.SubjectID]
		if !ok {
			subjectName = activity.SubjectID
		}
		metadata[activityID] = activityMetadata{
			subject:       subjectName,
			duration:      activity.Duration,
			studentsCount: resolveStudentsCount(activity.StudentsReference, groupStudents, yearStudents),
		}
	}
	return metadata
}

// resolveStudentsCount falls back to 0 for unrecognised reference types.
func resolveStudentsCount(ref dto.StudentsReference, groups, years map[string]int) int {
	switch ref.Type {
	case "group":
		return groups[ref.ID]
	case "year":
		return years[ref.ID]
	default:
		return 0
	}
}

// BuildRoomsSummary derives the room listing directly from the request, so
// rooms are reported even when the solver produced no schedule.
func BuildRoomsSummary(space dto.Space) []dto.RoomSummary {
	buildingNames := make(map[string]string, len(space.Buildings))
	for _, building := range space.Buildings {
		buildingNames[building.ID] = building.Name
	}

	summaries := make([]dto.RoomSummary, 0, len(space.Rooms))
	for _, room := range space.Rooms {
		buildingName := room.BuildingID
		if name, ok := buildingNames[room.BuildingID]; ok {
			buildingName = name
		}
		summaries = append(summaries, dto.RoomSummary{
			Name:     room.Name,
			Capacity: room.Capacity,
			Building: buildingName,
		})
	}
	return summaries
}
