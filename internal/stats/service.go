package stats

import (
	"sort"

	"github.com/p3mo/userdir/internal/models"
	"gorm.io/gorm"
)

// Every query here is re-run fresh on each call; nothing is cached.

type ActiveStats struct {
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Total    int64 `json:"total"`
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type RegistrationCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

func ActiveUserStats(db *gorm.DB) (*ActiveStats, error) {
	var s ActiveStats

	if err := db.Model(&models.User{}).Where("is_active = ?", true).Count(&s.Active).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("is_active = ?", false).Count(&s.Inactive).Error; err != nil {
		return nil, err
	}

	s.Total = s.Active + s.Inactive
	return &s, nil
}

// RoleDistribution counts profile rows per role name. Roles nobody
// holds do not appear.
func RoleDistribution(db *gorm.DB) ([]RoleCount, error) {
	counts := []RoleCount{}
	err := db.Model(&models.UserDetails{}).
		Select("roles.name as role, count(*) as count").
		Joins("JOIN roles ON roles.id = user_details.role_id").
		Group("roles.name").
		Order("roles.name").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// RegistrationsByMonth groups users by (year, month) of creation,
// ascending by year then month. Postgres groups in SQL; sqlite lacks
// EXTRACT, so its rows are grouped here instead.
func RegistrationsByMonth(db *gorm.DB) ([]RegistrationCount, error) {
	if db.Dialector.Name() == "sqlite" {
		return registrationsInMemory(db)
	}

	counts := []RegistrationCount{}
	err := db.Model(&models.User{}).
		Select("EXTRACT(YEAR FROM created_at)::int as year, EXTRACT(MONTH FROM created_at)::int as month, count(*) as count").
		Group("year, month").
		Order("year, month").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func registrationsInMemory(db *gorm.DB) ([]RegistrationCount, error) {
	var users []models.User
	if err := db.Select("created_at").Find(&users).Error; err != nil {
		return nil, err
	}

	type yearMonth struct {
		year  int
		month int
	}
	grouped := make(map[yearMonth]int64)
	for _, u := range users {
		key := yearMonth{u.CreatedAt.Year(), int(u.CreatedAt.Month())}
		grouped[key]++
	}

	counts := make([]RegistrationCount, 0, len(grouped))
	for key, n := range grouped {
		counts = append(counts, RegistrationCount{Year: key.year, Month: key.month, Count: n})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Year != counts[j].Year {
			return counts[i].Year < counts[j].Year
		}
		return counts[i].Month < counts[j].Month
	})

	return counts, nil
}
