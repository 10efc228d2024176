package remindermgmt

type ReminderResponse struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Cadence string   `json:"cadence"`
	Windows []string `json:"windows"`
	Weekday int      `json:"weekday"` // ISO-8601, 1=Monday ... 7=Sunday
	Enabled bool     `json:"enabled"`
}

type RemindersResponse struct {
	Reminders []ReminderResponse `json:"reminders"`
	Count     int                `json:"count"`
}
