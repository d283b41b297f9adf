package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"ecocart/internal/domain"
	"ecocart/internal/repos"
)

var ErrUserNotFound = errors.New("user not found")

type ProfileService struct {
	Users *repos.UserRepo
}

func NewProfileService(users *repos.UserRepo) *ProfileService {
	return &ProfileService{Users: users}
}

// ProfileUpdate carries the editable profile fields. Email identifies the
// record and is never changed by a save.
type ProfileUpdate struct {
	Name       string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

// Save updates the profile matching the given email. Unknown emails return
// ErrUserNotFound and write nothing.
func (s *ProfileService) Save(email string, upd ProfileUpdate) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if v := strings.TrimSpace(upd.Name); v != "" {
		u.Name = v
	}
	u.Phone = strings.TrimSpace(upd.Phone)
	u.Address = strings.TrimSpace(upd.Address)
	u.City = strings.TrimSpace(upd.City)
	u.PostalCode = strings.TrimSpace(upd.PostalCode)
	if err := s.Users.Update(u.ID, *u); err != nil {
		return nil, err
	}
	return u, nil
}

// SavePreferences replaces the stored notification settings.
func (s *ProfileService) SavePreferences(email string, p domain.Preferences) error {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if p.EmailFrequency == "" {
		p.EmailFrequency = "monthly"
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	u.PreferencesJSON = string(b)
	return s.Users.Update(u.ID, *u)
}
