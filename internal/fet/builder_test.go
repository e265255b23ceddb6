package fet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sgh-fet-agent/internal/dto"
)

func sampleRunRequest() dto.RunTimetableRequest {
	return dto.RunTimetableRequest{
		Metadata: dto.RunMetadata{
			TimetableID:     "tt-1",
			Semester:        "2026-1",
			InstitutionName: "SGH Warsaw",
		},
		Calendar: dto.Calendar{
			Days: []dto.CalendarDay{
				{Index: 0, Name: "Mon", LongName: "Monday"},
				{Index: 1, Name: "Tue", LongName: "Tuesday"},
			},
			Hours: []dto.CalendarHour{
				{Index: 0, Name: "08:00", LongName: "Block 1"},
				{Index: 1, Name: "09:40", LongName: "Block 2"},
				{Index: 2, Name: "11:20", LongName: "Block 3"},
			},
		},
		Subjects: []dto.Subject{
			{ID: "sub-1", Name: "Microeconomics", Code: "MIC"},
		},
		Teachers: []dto.Teacher{
			{ID: "tch-1", Name: "A. Kowalska", TargetHours: 10},
		},
		StudentYears: []dto.StudentYear{
			{
				ID: "year-1", Name: "First Year", TotalStudents: 60,
				Groups: []dto.StudentGroup{
					{ID: "grp-1", Name: "Group A", Students: 30},
				},
			},
		},
		Activities: []dto.Activity{
			{
				ID: "1", GroupID: "1", TeacherID: "tch-1", SubjectID: "sub-1",
				StudentsReference: dto.StudentsReference{Type: "group", ID: "grp-1"},
				Duration:          2, TotalDuration: 2,
			},
		},
		Space: dto.Space{
			Buildings: []dto.Building{{ID: "bld-1", Name: "Main Building Complex"}},
			Rooms:     []dto.Room{{ID: "rm-1", Name: "Aula I", BuildingID: "bld-1", Capacity: 120}},
		},
	}
}

func buildDocument(t *testing.T, req dto.RunTimetableRequest) string {
	t.Helper()
	calendar := NewCalendarIndex(req.Calendar)
	out, err := NewDocumentBuilder().Build(req, calendar)
	require.NoError(t, err)
	return string(out)
}

func TestDocumentBuilderSectionOrder(t *testing.T) {
	doc := buildDocument(t, sampleRunRequest())

	sections := []string{
		"<Mode>", "<Institution_Name>", "<Comments>",
		"<Days_List>", "<Hours_List>", "<Students_List>",
		"<Teachers_List>", "<Subjects_List>", "<Activity_Tags_List>",
		"<Activities_List>", "<Buildings_List>", "<Rooms_List>",
		"<Time_Constraints_List>", "<Space_Constraints_List>",
	}
	last := -1
	for _, section := range sections {
		pos := strings.Index(doc, section)
		require.GreaterOrEqual(t, pos, 0, "missing section %s", section)
		assert.Greater(t, pos, last, "section %s out of order", section)
		last = pos
	}

	assert.True(t, strings.HasPrefix(doc, "<?xml"))
	assert.Contains(t, doc, `<fet version="6.0.0">`)
}

func TestDocumentBuilderDeterministic(t *testing.T) {
	req := sampleRunRequest()
	first := buildDocument(t, req)
	second := buildDocument(t, req)
	assert.Equal(t, first, second)
}

func TestDocumentBuilderResolvesReferences(t *testing.T) {
	doc := buildDocument(t, sampleRunRequest())

	assert.Contains(t, doc, "<Teacher>A. Kowalska</Teacher>")
	assert.Contains(t, doc, "<Subject>Microeconomics</Subject>")
	assert.Contains(t, doc, "<Students>grp-1</Students>")
	assert.Contains(t, doc, "<Building>Main Building Complex</Building>")
}

func TestDocumentBuilderDanglingReferencesFallBackToIDs(t *testing.T) {
	req := sampleRunRequest()
	req.Activities[0].TeacherID = "ghost-teacher"
	req.Activities[0].SubjectID = "ghost-subject"
	req.Space.Rooms[0].BuildingID = "ghost-building"

	doc := buildDocument(t, req)

	assert.Contains(t, doc, "<Teacher>ghost-teacher</Teacher>")
	assert.Contains(t, doc, "<Subject>ghost-subject</Subject>")
	assert.Contains(t, doc, "<Building>ghost-building</Building>")
}

func TestDocumentBuilderSynthesizesSubgroups(t *testing.T) {
	doc := buildDocument(t, sampleRunRequest())

	assert.Contains(t, doc, "<Name>grp-1-sub</Name>")
	assert.Contains(t, doc, "<Number_of_Categories>0</Number_of_Categories>")
	assert.Contains(t, doc, "<Separator> </Separator>")
}

func TestDocumentBuilderTruncatesBuildingShortName(t *testing.T) {
	doc := buildDocument(t, sampleRunRequest())

	assert.Contains(t, doc, "<Short_Name>Main Build</Short_Name>")
}

func TestDocumentBuilderMetadataFallbacks(t *testing.T) {
	req := sampleRunRequest()
	req.Metadata.InstitutionName = ""
	req.Metadata.Comments = ""

	doc := buildDocument(t, req)

	assert.Contains(t, doc, "<Institution_Name>SGH</Institution_Name>")
	assert.Contains(t, doc, "<Comments>Generated automatically for 2026-1</Comments>")
}

func TestDocumentBuilderDefaultConstraints(t *testing.T) {
	req := sampleRunRequest()
	req.TimeConstraints = nil
	req.Space.SpaceConstraints = nil

	doc := buildDocument(t, req)

	assert.Contains(t, doc, "<ConstraintBasicCompulsoryTime>")
	assert.Contains(t, doc, "<ConstraintBasicCompulsorySpace>")
	assert.Contains(t, doc, "<Weight_Percentage>100</Weight_Percentage>")
}

func TestDocumentBuilderConstraintVariants(t *testing.T) {
	inactive := false
	req := sampleRunRequest()
	req.TimeConstraints = []dto.TimeConstraint{
		{Type: dto.TimeConstraintBasicCompulsory, Weight: 99.5},
		{
			Type: dto.TimeConstraintMinDaysBetween, Weight: 95,
			MinDays: 1, ActivityIDs: []string{"1", "2"}, ConsecutiveIfSameDay: true,
		},
		{
			Type: dto.TimeConstraintTeacherNotAvail, Weight: 100,
			TeacherID:         "tch-1",
			NotAvailableSlots: []dto.NotAvailableSlot{{DayIndex: 1, HourIndex: 2}},
			Active:            &inactive,
		},
	}

	doc := buildDocument(t, req)

	assert.Contains(t, doc, "<Weight_Percentage>99.5</Weight_Percentage>")
	assert.Contains(t, doc, "<Number_of_Activities>2</Number_of_Activities>")
	assert.Contains(t, doc, "<MinDays>1</MinDays>")
	assert.Contains(t, doc, "<Consecutive_If_Same_Day>true</Consecutive_If_Same_Day>")

	assert.Contains(t, doc, "<ConstraintTeacherNotAvailableTimes>")
	assert.Contains(t, doc, "<Teacher>A. Kowalska</Teacher>")
	assert.Contains(t, doc, "<Day>Tuesday</Day>")
	assert.Contains(t, doc, "<Hour>Block 3</Hour>")
	assert.Contains(t, doc, "<Active>false</Active>")

	// Insertion order across variants is preserved.
	basic := strings.Index(doc, "<ConstraintBasicCompulsoryTime>")
	minDays := strings.Index(doc, "<ConstraintMinDaysBetweenActivities>")
	notAvail := strings.Index(doc, "<ConstraintTeacherNotAvailableTimes>")
	assert.Less(t, basic, minDays)
	assert.Less(t, minDays, notAvail)
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "100", formatWeight(100))
	assert.Equal(t, "99.5", formatWeight(99.5))
	assert.Equal(t, "0", formatWeight(0))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", truncateRunes("short", 10))
	assert.Equal(t, "0123456789", truncateRunes("0123456789abc", 10))
	assert.Equal(t, "żółtyżółty", truncateRunes("żółtyżółtyżółty", 10))
}
