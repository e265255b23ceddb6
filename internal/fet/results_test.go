package fet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sgh-fet-agent/internal/dto"
)

func writeActivitiesFile(t *testing.T, workDir, dirName, fileName, content string) {
	t.Helper()
	dir := filepath.Join(workDir, "timetables", dirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0o644))
}

func decoderRequest() dto.RunTimetableRequest {
	req := sampleRunRequest()
	req.Activities = []dto.Activity{
		{
			ID: "1", GroupID: "1", TeacherID: "tch-1", SubjectID: "sub-1",
			StudentsReference: dto.StudentsReference{Type: "group", ID: "grp-1"},
			Duration:          2, TotalDuration: 2,
		},
		{
			ID: "2", GroupID: "2", TeacherID: "tch-1", SubjectID: "sub-1",
			StudentsReference: dto.StudentsReference{Type: "year", ID: "year-1"},
			Duration:          1, TotalDuration: 1,
		},
	}
	return req
}

func TestDecodeScheduleExpandsContiguousSlots(t *testing.T) {
	workDir := t.TempDir()
	req := decoderRequest()
	calendar := NewCalendarIndex(req.Calendar)

	writeActivitiesFile(t, workDir, "run-1", "run-1_activities.xml", `
<Activities_Timetable>
	<Activity><Id>1</Id><Day>Tuesday</Day><Hour>Block 2</Hour></Activity>
	<Activity><Id>2</Id><Day>Mon</Day><Hour>08:00</Hour></Activity>
</Activities_Timetable>`)

	entries := NewResultDecoder().DecodeSchedule(req, calendar, workDir, "run-1")

	require.Len(t, entries, 2)

	// Duration 2 starting at day 1, hour 1 with 3 hours per day.
	assert.Equal(t, dto.ScheduleEntryID("1"), entries[0].ID)
	assert.Equal(t, "Microeconomics", entries[0].Subject)
	assert.Equal(t, []int{4, 5}, entries[0].TimeSlots)
	assert.Equal(t, 30, entries[0].StudentsCount)

	assert.Equal(t, []int{0}, entries[1].TimeSlots)
	assert.Equal(t, 60, entries[1].StudentsCount)
}

func TestDecodeScheduleMissingOutputYieldsEmptySchedule(t *testing.T) {
	workDir := t.TempDir()
	req := decoderRequest()
	calendar := NewCalendarIndex(req.Calendar)

	entries := NewResultDecoder().DecodeSchedule(req, calendar, workDir, "run-1")

	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestDecodeScheduleSkipsAnomalousEntries(t *testing.T) {
	workDir := t.TempDir()
	req := decoderRequest()
	calendar := NewCalendarIndex(req.Calendar)

	writeActivitiesFile(t, workDir, "run-1", "run-1_activities.xml", `
<Activities_Timetable>
	<Activity><Id></Id><Day>Monday</Day><Hour>Block 1</Hour></Activity>
	<Activity><Id>999</Id><Day>Monday</Day><Hour>Block 1</Hour></Activity>
	<Activity><Id>1</Id><Day></Day><Hour>Block 1</Hour></Activity>
	<Activity><Id>1</Id><Day>Caturday</Day><Hour>Block 1</Hour></Activity>
	<Activity><Id>1</Id><Day>Monday</Day><Hour>Block 9</Hour></Activity>
	<Activity><Id>2</Id><Day>Monday</Day><Hour>Block 2</Hour></Activity>
</Activities_Timetable>`)

	entries := NewResultDecoder().DecodeSchedule(req, calendar, workDir, "run-1")

	require.Len(t, entries, 1)
	assert.Equal(t, dto.ScheduleEntryID("2"), entries[0].ID)
	assert.Equal(t, []int{1}, entries[0].TimeSlots)
}

func TestDecodeScheduleMalformedXMLYieldsEmptySchedule(t *testing.T) {
	workDir := t.TempDir()
	req := decoderRequest()
	calendar := NewCalendarIndex(req.Calendar)

	writeActivitiesFile(t, workDir, "run-1", "run-1_activities.xml", "<Activities_Timetable><Activity>")

	entries := NewResultDecoder().DecodeSchedule(req, calendar, workDir, "run-1")
	assert.Empty(t, entries)
}

func TestDecodeScheduleSubjectFallsBackToID(t *testing.T) {
	workDir := t.TempDir()
	req := decoderRequest()
	req.Subjects = nil
	calendar := NewCalendarIndex(req.Calendar)

	writeActivitiesFile(t, workDir, "run-1", "run-1_activities.xml", `
<Activities_Timetable>
	<Activity><Id>2</Id><Day>Monday</Day><Hour>Block 1</Hour></Activity>
</Activities_Timetable>`)

	entries := NewResultDecoder().DecodeSchedule(req, calendar, workDir, "run-1")

	require.Len(t, entries, 1)
	assert.Equal(t, "sub-1", entries[0].Subject)
}

func TestLocateTimetableDirPicksNewest(t *testing.T) {
	workDir := t.TempDir()
	base := filepath.Join(workDir, "timetables")
	older := filepath.Join(base, "run-1-old")
	newer := filepath.Join(base, "run-1-new")
	other := filepath.Join(base, "unrelated")
	require.NoError(t, os.MkdirAll(older, 0o755))
	require.NoError(t, os.MkdirAll(newer, 0o755))
	require.NoError(t, os.MkdirAll(other, 0o755))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	dir, ok := LocateTimetableDir(workDir, "run-1")
	require.True(t, ok)
	assert.Equal(t, newer, dir)
}

func TestLocateTimetableDirMissingBase(t *testing.T) {
	_, ok := LocateTimetableDir(t.TempDir(), "run-1")
	assert.False(t, ok)
}

func TestFindActivitiesFilePicksLexicographicallyFirst(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_activities.xml"), []byte("<x/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_activities.xml"), []byte("<x/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_teachers.xml"), []byte("<x/>"), 0o644))

	file, ok := findActivitiesFile(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "a_activities.xml"), file)
}

func TestBuildRoomsSummaryResolvesBuildingNames(t *testing.T) {
	rooms := BuildRoomsSummary(dto.Space{
		Buildings: []dto.Building{{ID: "bld-1", Name: "Main Building"}},
		Rooms: []dto.Room{
			{ID: "rm-1", Name: "Aula I", BuildingID: "bld-1", Capacity: 120},
			{ID: "rm-2", Name: "Lab 2", BuildingID: "bld-missing", Capacity: 24},
			{ID: "rm-3", Name: "Seminar 3", Capacity: 18},
		},
	})

	require.Len(t, rooms, 3)
	assert.Equal(t, dto.RoomSummary{Name: "Aula I", Capacity: 120, Building: "Main Building"}, rooms[0])
	assert.Equal(t, "bld-missing", rooms[1].Building)
	assert.Equal(t, "", rooms[2].Building)
}
