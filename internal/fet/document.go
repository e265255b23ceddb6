package fet

import "encoding/xml"

// The structs below mirror the FET input schema. Section order is fixed by
// struct layout, which keeps the emitted document byte-stable for identical
// input.

const fetVersion = "6.0.0"

type fetDocument struct {
	XMLName         xml.Name `xml:"fet"`
	Version         string   `xml:"version,attr"`
	Mode            string   `xml:"Mode"`
	InstitutionName string   `xml:"Institution_Name"`
	Comments        string   `xml:"Comments"`

	Days             daysList             `xml:"Days_List"`
	Hours            hoursList            `xml:"Hours_List"`
	Students         studentsList         `xml:"Students_List"`
	Teachers         teachersList         `xml:"Teachers_List"`
	Subjects         subjectsList         `xml:"Subjects_List"`
	ActivityTags     activityTagsList     `xml:"Activity_Tags_List"`
	Activities       activitiesList       `xml:"Activities_List"`
	Buildings        buildingsList        `xml:"Buildings_List"`
	Rooms            roomsList            `xml:"Rooms_List"`
	TimeConstraints  timeConstraintsList  `xml:"Time_Constraints_List"`
	SpaceConstraints spaceConstraintsList `xml:"Space_Constraints_List"`
}

type daysList struct {
	NumberOfDays int       `xml:"Number_of_Days"`
	Days         []dayNode `xml:"Day"`
}

type dayNode struct {
	Name string `xml:"Name"`
}

type hoursList struct {
	NumberOfHours int        `xml:"Number_of_Hours"`
	Hours         []hourNode `xml:"Hour"`
}

type hourNode struct {
	Name string `xml:"Name"`
}

type studentsList struct {
	Years []yearNode `xml:"Year"`
}

type yearNode struct {
	Name               string      `xml:"Name"`
	NumberOfStudents   int         `xml:"Number_of_Students"`
	Comments           string      `xml:"Comments"`
	NumberOfCategories int         `xml:"Number_of_Categories"`
	Separator          string      `xml:"Separator"`
	Groups             []groupNode `xml:"Group"`
}

type groupNode struct {
	Name             string         `xml:"Name"`
	NumberOfStudents int            `xml:"Number_of_Students"`
	Comments         string         `xml:"Comments"`
	Subgroups        []subgroupNode `xml:"Subgroup"`
}

type subgroupNode struct {
	Name             string `xml:"Name"`
	NumberOfStudents int    `xml:"Number_of_Students"`
	Comments         string `xml:"Comments"`
}

type teachersList struct {
	Teachers []teacherNode `xml:"Teacher"`
}

type teacherNode struct {
	Name                string `xml:"Name"`
	TargetNumberOfHours int    `xml:"Target_Number_of_Hours"`
	QualifiedSubjects   string `xml:"Qualified_Subjects"`
	Comments            string `xml:"Comments"`
}

type subjectsList struct {
	Subjects []subjectNode `xml:"Subject"`
}

type subjectNode struct {
	Name     string `xml:"Name"`
	Code     string `xml:"Code"`
	Comments string `xml:"Comments"`
}

// activityTagsList is always emitted and always empty; FET expects the
// section to exist.
type activityTagsList struct{}

type activitiesList struct {
	Activities []activityNode `xml:"Activity"`
}

type activityNode struct {
	Teacher         string `xml:"Teacher"`
	Subject         string `xml:"Subject"`
	Students        string `xml:"Students"`
	Duration        int    `xml:"Duration"`
	TotalDuration   int    `xml:"Total_Duration"`
	ID              string `xml:"Id"`
	ActivityGroupID string `xml:"Activity_Group_Id"`
	Active          bool   `xml:"Active"`
	Comments        string `xml:"Comments"`
}

type buildingsList struct {
	Buildings []buildingNode `xml:"Building"`
}

type buildingNode struct {
	Name      string `xml:"Name"`
	ShortName string `xml:"Short_Name"`
	Comments  string `xml:"Comments"`
}

type roomsList struct {
	Rooms []roomNode `xml:"Room"`
}

type roomNode struct {
	Name     string `xml:"Name"`
	LongName string `xml:"Long_Name"`
	Code     string `xml:"Code"`
	Building string `xml:"Building"`
	Capacity int    `xml:"Capacity"`
	Virtual  bool   `xml:"Virtual"`
	Comments string `xml:"Comments"`
}

// Constraint lists hold heterogeneous children; each node type carries its
// own XMLName so insertion order across variants is preserved.

type timeConstraintsList struct {
	Constraints []any
}

type spaceConstraintsList struct {
	Constraints []any
}

type constraintBasicCompulsoryTimeNode struct {
	XMLName          xml.Name `xml:"ConstraintBasicCompulsoryTime"`
	WeightPercentage string   `xml:"Weight_Percentage"`
	Active           bool     `xml:"Active"`
	Comments         string   `xml:"Comments"`
}

type constraintMinDaysBetweenActivitiesNode struct {
	XMLName              xml.Name `xml:"ConstraintMinDaysBetweenActivities"`
	WeightPercentage     string   `xml:"Weight_Percentage"`
	ConsecutiveIfSameDay bool     `xml:"Consecutive_If_Same_Day"`
	NumberOfActivities   int      `xml:"Number_of_Activities"`
	ActivityIDs          []string `xml:"Activity_Id"`
	MinDays              int      `xml:"MinDays"`
	Active               bool     `xml:"Active"`
	Comments             string   `xml:"Comments"`
}

type constraintTeacherNotAvailableNode struct {
	XMLName                   xml.Name               `xml:"ConstraintTeacherNotAvailableTimes"`
	WeightPercentage          string                 `xml:"Weight_Percentage"`
	Teacher                   string                 `xml:"Teacher"`
	NumberOfNotAvailableTimes int                    `xml:"Number_of_Not_Available_Times"`
	NotAvailableTimes         []notAvailableTimeNode `xml:"Not_Available_Time"`
	Active                    bool                   `xml:"Active"`
	Comments                  string                 `xml:"Comments"`
}

type notAvailableTimeNode struct {
	Day  string `xml:"Day"`
	Hour string `xml:"Hour"`
}

type constraintBasicCompulsorySpaceNode struct {
	XMLName          xml.Name `xml:"ConstraintBasicCompulsorySpace"`
	WeightPercentage string   `xml:"Weight_Percentage"`
	Active           bool     `xml:"Active"`
	Comments         string   `xml:"Comments"`
}
