package domain

import "encoding/json"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID              int64  `db:"id"`
	Name            string `db:"name"`
	Email           string `db:"email"`
	Phone           string `db:"phone"`
	Hash            string `db:"password_hash"`
	Role            string `db:"role"`
	EcoPoints       int    `db:"eco_points"`
	Address         string `db:"address"`
	City            string `db:"city"`
	PostalCode      string `db:"postal_code"`
	PreferencesJSON string `db:"preferences_json"`
	CreatedAt       string `db:"created_at"`
}

// Preferences are the notification settings kept on the user record.
type Preferences struct {
	Newsletter     bool   `json:"newsletter"`
	Promotional    bool   `json:"promotional"`
	ProductUpdates bool   `json:"productUpdates"`
	OrderUpdates   bool   `json:"orderUpdates"`
	EcoTips        bool   `json:"ecoTips"`
	EmailFrequency string `json:"emailFrequency"` // daily | weekly | monthly
}

func DefaultPreferences() Preferences {
	return Preferences{OrderUpdates: true, EmailFrequency: "monthly"}
}

// Preferences decodes the stored settings; missing or corrupt JSON falls
// back to the defaults rather than erroring.
func (u User) Preferences() Preferences {
	if u.PreferencesJSON == "" {
		return DefaultPreferences()
	}
	p := DefaultPreferences()
	if err := json.Unmarshal([]byte(u.PreferencesJSON), &p); err != nil {
		return DefaultPreferences()
	}
	if p.EmailFrequency == "" {
		p.EmailFrequency = "monthly"
	}
	return p
}
