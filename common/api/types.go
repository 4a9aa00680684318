package api

import "time"

type Child struct {
	Id         string `json:"id,omitempty"`
	Name       string `json:"name"`
	ParentName string `json:"parent_name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
}

type Staff struct {
	Id        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
}

type User struct {
	Id        string `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type GeneralReport struct {
	StaffCount    int `json:"staffCount"`
	ChildrenCount int `json:"childrenCount"`
	UsersCount    int `json:"usersCount"`
}

// DailyReportQuery leaves a zero date to the server default, the current day.
type DailyReportQuery struct {
	StartDate time.Time
	EndDate   time.Time
	ChildIds  []string
	StaffIds  []string
	UserIds   []string
}

type Summary struct {
	Meal     int `json:"meal"`
	Nap      int `json:"nap"`
	Mood     int `json:"mood"`
	Diaper   int `json:"diaper"`
	Incident int `json:"incident"`
}

type PercentageDiff struct {
	Meal     float64 `json:"meal"`
	Nap      float64 `json:"nap"`
	Mood     float64 `json:"mood"`
	Diaper   float64 `json:"diaper"`
	Incident float64 `json:"incident"`
}

type LogEntry struct {
	Id        string    `json:"id"`
	Type      string    `json:"type"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	ChildId   string    `json:"childId"`
	StaffId   string    `json:"staffId"`
	Child     *Child    `json:"child"`
	Staff     *Staff    `json:"staff"`
}

type HealthRecord struct {
	Id               string    `json:"id"`
	Type             string    `json:"type"`
	Details          string    `json:"details"`
	ActionTaken      string    `json:"actionTaken"`
	Timestamp        time.Time `json:"timestamp"`
	ChildId          string    `json:"childId"`
	RecordedByUserId string    `json:"recordedByUserId"`
	Child            *Child    `json:"child"`
	RecordedByUser   *User     `json:"recordedByUser"`
}

type DailyReport struct {
	CurrentPeriod struct {
		StartDate    time.Time      `json:"startDate"`
		EndDate      time.Time      `json:"endDate"`
		Summary      Summary        `json:"summary"`
		Log          []LogEntry     `json:"log"`
		HealthRecord []HealthRecord `json:"healthRecord"`
	} `json:"currentPeriod"`
	PreviousPeriod struct {
		StartDate      time.Time      `json:"startDate"`
		EndDate        time.Time      `json:"endDate"`
		Summary        Summary        `json:"summary"`
		PercentageDiff PercentageDiff `json:"percentageDiff"`
	} `json:"previousPeriod"`
}

// FieldErrors is the body of a rejected create request.
type FieldErrors map[string][]string
