package domain

// TaskRuntime marks a task whose duration varies per occurrence; the operator
// enters the minutes instead of the catalog supplying them.
const TaskRuntime = -1

// TaskDefinition pairs a task name with its nominal per-unit minutes, or
// TaskRuntime when the duration is entered by hand.
type TaskDefinition struct {
	Name    string
	Minutes int
}

// Runtime reports whether the task's duration must be entered per occurrence.
func (t TaskDefinition) Runtime() bool {
	return t.Minutes == TaskRuntime
}

// Tasks is the operational task catalog, taken from the team's time study.
// Order matters only for presentation; lookup is by name.
var Tasks = []TaskDefinition{
	{"Live Class Scheduling", 1},
	{"Live Class Schedule Checking", 2},
	{"Attendance Updation", 2},
	{"Absent Sheet Updation / Message Sending", 3},
	{"Assignment Remainder Message", 4},
	{"Assessment Remainder Message", 5},
	{"Frequent Absentees call", 3},
	{"Kit Address Updation", 2},
	{"Follow-up Calls", 3},
	{"Support Queries", TaskRuntime},
	{"Trainers Queries", TaskRuntime},
	{"Absentees chat updation in sheet / Reply", 1},
	{"Normal Chat Reply ( Gallabox )", 1},
	{"Kit Address Verification ( 1 on 1 ) / Message", 2},
	{"Kit Address Verification ( 1 on 1 ) / call", 3},
	{"Progression Sheet Updation / Message Sending", 3},
	{"Overall Sheet Updation", 1},
	{"Time Table Creation", 4},
	{"Materials Required Sending", 5},
	{"Course Access Message", 4},
	{"Course absentees sheet Updation", 5},
	{"Course absentees Call", 5},
	{"Course Feedback message", 3},
	{"Course Document messsage", 3},
	{"PTM Schedule Template Making", 3},
	{"PTM Schedule Sending", 2},
	{"PTM Absent sheet updation / Message sending", 3},
	{"PTM Reschedule Sheet Updation", 2},
	{"PTM Reschedule Call", 7},
	{"Hold Calls", 5},
	{"Morning Club Inaguration Message", 3},
	{"Payment Follow Sheet - Sales Team", 7},
	{"Batch Changing", 3},
	{"Whatsapp Message Number Changing", 2},
	{"Kit Address Sheet Updation", TaskRuntime},
	{"Graduation and Event calls", 4},
	{"Leave Holiday message", 30},
	{"Course Preparation Message From Trainer Team", TaskRuntime},
	{"Competition Message From Trainers Team", TaskRuntime},
	{"Trainer Follow Up Messages", TaskRuntime},
	{"Trainer Follow Up calls", TaskRuntime},
	{"Innovation Club Messages", 3},
	{"Discontinue Process From Sales Team", 2},
	{"Scheduling Class in Edmingle", 2},
	{"Live Class Scheduling ( Gallabox )", 1},
	{"PMC 1 on 1 Call Scheduling", 5},
	{"Absentees Call", 3},
	{"Whastapp Chat Reply", 2},
	{"Customer Assistance", 5},
	{"Onboarding Call / Payment Verification", 10},
	{"Chitti Account Creation / Adding in Dashboard / Sending Login Credentials", 5},
	{"Whatsapp Class Remainder", 2},
	{"Certificate Address collection", 2},
	{"Queries from Sales", TaskRuntime},
	{"Other", TaskRuntime},
}

// LookupTask finds a task definition by name.
func LookupTask(name string) (TaskDefinition, bool) {
	for _, t := range Tasks {
		if t.Name == name {
			return t, true
		}
	}
	return TaskDefinition{}, false
}

// Teams is the fixed team axis used by reports; charting relies on every team
// appearing even with zero records. Kept sorted.
var Teams = []string{
	"CA 360 Academy Operations",
	"Chitti Future School Onboarding",
	"Chitti Future School Operations",
	"Neet/Jee Operations and Onboarding",
	"Pick My Career Onboarding",
	"Pick My Career Operations",
	"Stem Educational Program Onboarding",
	"Stem Educational Program Operations",
}

// Frequencies lists how often a task recurs. Kept sorted.
var Frequencies = []string{"Daily", "Monthly", "Weekend", "Weekly", "Yearly"}

// ValidTeam reports whether team is one of the fixed teams.
func ValidTeam(team string) bool {
	for _, t := range Teams {
		if t == team {
			return true
		}
	}
	return false
}

// ValidFrequency reports whether freq is a known recurrence.
func ValidFrequency(freq string) bool {
	for _, f := range Frequencies {
		if f == freq {
			return true
		}
	}
	return false
}

// DefaultAdmin is auto-provisioned on bootstrap when no user with its ID
// exists, so a fresh database is always reachable.
var DefaultAdmin = User{
	ID:       "admin-001",
	Username: "admin",
	Password: "password123",
	Name:     "Super Admin",
	Role:     RoleAdmin,
}
