package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	DiscordID string `gorm:"uniqueIndex"`
	Username  string
	Email     string
	Avatar    string
	Profile   `gorm:"embedded"`
}

// Profile holds the student details collected after first login.
type Profile struct {
	FullName            string     `json:"full_name"`
	UniversityName      string     `json:"university_name"`
	UniversityLocation  string     `json:"university_location"`
	DegreeProgram       string     `json:"degree_program"`
	YearOfStudy         string     `json:"year_of_study"`
	GraduationDate      *time.Time `json:"graduation_date"`
	LanguageProficiency []string   `json:"language_proficiency" gorm:"serializer:json"`
	PhoneNumber         string     `json:"phone_number"`
}

// Complete reports whether the onboarding form has been filled in.
func (p Profile) Complete() bool {
	return strings.TrimSpace(p.FullName) != ""
}

var YearsOfStudy = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "Graduate"}
