package store

import "time"

type Child struct {
	Id         string `json:"id" firestore:"-" gorm:"column:child_id;primary_key"`
	Name       string `json:"name" firestore:"name" gorm:"column:name"`
	ParentName string `json:"parent_name" firestore:"parent_name" gorm:"column:parent_name"`
	Email      string `json:"email" firestore:"email" gorm:"column:email"`
	Address    string `json:"address" firestore:"address" gorm:"column:address"`
}

func (Child) TableName() string { return "children" }

// Staff documents are written either with Name (staff route) or with
// FirstName/LastName (seeded data). Both shapes are kept as stored.
type Staff struct {
	Id        string `json:"id" firestore:"-" gorm:"column:staff_id;primary_key"`
	Name      string `json:"name,omitempty" firestore:"name,omitempty" gorm:"column:name"`
	FirstName string `json:"first_name,omitempty" firestore:"first_name,omitempty" gorm:"column:first_name"`
	LastName  string `json:"last_name,omitempty" firestore:"last_name,omitempty" gorm:"column:last_name"`
	Email     string `json:"email,omitempty" firestore:"email,omitempty" gorm:"column:email"`
	Address   string `json:"address,omitempty" firestore:"address,omitempty" gorm:"column:address"`
}

func (Staff) TableName() string { return "staffs" }

type User struct {
	Id        string `json:"id" firestore:"-" gorm:"column:user_id;primary_key"`
	FirstName string `json:"first_name" firestore:"first_name" gorm:"column:first_name"`
	LastName  string `json:"last_name" firestore:"last_name" gorm:"column:last_name"`
}

func (User) TableName() string { return "users" }

type DailyLogEntry struct {
	Id        string    `json:"id" firestore:"-" gorm:"column:daily_log_entry_id;primary_key"`
	Type      string    `json:"type" firestore:"type" gorm:"column:type"`
	Details   string    `json:"details" firestore:"details" gorm:"column:details"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp" gorm:"column:timestamp"`
	ChildId   string    `json:"childId" firestore:"childId" gorm:"column:child_id"`
	StaffId   string    `json:"staffId" firestore:"staffId" gorm:"column:staff_id"`
}

func (DailyLogEntry) TableName() string { return "daily_log_entries" }

type HealthRecordEntry struct {
	Id               string    `json:"id" firestore:"-" gorm:"column:health_record_entry_id;primary_key"`
	Type             string    `json:"type" firestore:"type" gorm:"column:type"`
	Details          string    `json:"details" firestore:"details" gorm:"column:details"`
	ActionTaken      string    `json:"actionTaken" firestore:"actionTaken" gorm:"column:action_taken"`
	Timestamp        time.Time `json:"timestamp" firestore:"timestamp" gorm:"column:timestamp"`
	ChildId          string    `json:"childId" firestore:"childId" gorm:"column:child_id"`
	RecordedByUserId string    `json:"recordedByUserId" firestore:"recordedByUserId" gorm:"column:recorded_by_user_id"`
}

func (HealthRecordEntry) TableName() string { return "health_record_entries" }
