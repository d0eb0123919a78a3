package entities

import "time"

// ActivityType classifies a recent activity entry
type ActivityType string

const (
	ActivityTypeAppointment ActivityType = "appointment"
	ActivityTypePatient     ActivityType = "patient"
	ActivityTypeTreatment   ActivityType = "treatment"
)

// ActivityItem is one entry of the dashboard activity feed
type ActivityItem struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
}

// Stats is the dashboard snapshot computed by the backend on every fetch
type Stats struct {
	TotalPatients             int            `json:"totalPatients"`
	TotalDentists             int            `json:"totalDentists"`
	TotalTreatments           int            `json:"totalTreatments"`
	TotalUpcomingAppointments int            `json:"totalUpcomingAppointments"`
	TotalAppointmentsToday    int            `json:"totalAppointmentsToday"`
	RecentActivity            []ActivityItem `json:"recentActivity,omitempty"`
}
