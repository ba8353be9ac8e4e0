package domain

import "time"

// Role maps a role name to its permission strings.
type Role struct {
	Name        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// LogEntry is one append-only audit record.
type LogEntry struct {
	TS      int64  `json:"ts"`
	Message string `json:"message"`
}

// Announcement is an admin-authored broadcast, keyed by its millisecond timestamp.
type Announcement struct {
	TS   int64  `json:"ts"`
	Text string `json:"text"`
}

// Order is a single persisted order line from the bulk intake endpoint.
type Order struct {
	ItemCode    string    `json:"item_code"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderInput is one row of a bulk order request before persistence.
type OrderInput struct {
	Code        string
	Description string
	Quantity    int
}

// Consumable is one catalog item, seeded from the JSON catalog file.
type Consumable struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Price float64 `json:"price"`
}

// Settings holds one user's UI preferences.
type Settings struct {
	Username      string    `json:"-"`
	Theme         string    `json:"theme"`
	Notifications string    `json:"notifications"`
	DefaultPage   string    `json:"default_page"`
	FontSize      string    `json:"font_size"`
	Accessibility string    `json:"accessibility"`
	APIBase       string    `json:"api_base"`
	UpdatedAt     time.Time `json:"-"`
}

// DefaultSettings returns the settings a user has before ever saving any.
func DefaultSettings(username string) Settings {
	return Settings{
		Username:      username,
		Theme:         "light",
		Notifications: "on",
		DefaultPage:   "index.html",
		FontSize:      "medium",
		Accessibility: "normal",
		APIBase:       "",
	}
}

// Backup is the full administrative dump. Restore replaces every collection
// with the payload's contents in one transaction.
type Backup struct {
	Users         []User         `json:"users"`
	Roles         []Role         `json:"roles"`
	Sessions      []Session      `json:"sessions"`
	APIKeys       []APIKey       `json:"apikeys"`
	Announcements []Announcement `json:"announcements"`
	Logs          []LogEntry     `json:"logs"`
}
