package models

import (
	"slices"
	"strings"

	"github.com/lib/pq"
)

type User struct {
	BaseModel

	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	Name          string         `gorm:"not null" json:"name"`
	PasswordHash  string         `gorm:"not null" json:"-"`
	Role          UserRole       `gorm:"type:varchar(16);not null;default:'user'" json:"role"`
	Subscriptions pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"subscriptions"`
	Courses       pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"courses"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

func (u *User) HasSubscription(programID string) bool {
	return slices.Contains(u.Subscriptions, programID)
}

func (u *User) HasCourse(courseID string) bool {
	return slices.Contains(u.Courses, courseID)
}

// NormalizeEmail - email хранится и ищется в нижнем регистре
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UniqueIDs убирает пустые значения и дубли, сохраняя порядок
func UniqueIDs(ids []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
