package models

import "time"

// FavoriteGroup is a named set of cities scoped to one user. Group names are
// unique per user. The cities are membership rows, deliberately independent of
// the favorites table: deleting a group never touches the underlying favorites.
type FavoriteGroup struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Username  string    `json:"-" gorm:"index;uniqueIndex:idx_user_group_name"`
	Name      string    `json:"name" gorm:"uniqueIndex:idx_user_group_name"`
	CreatedAt time.Time `json:"-"`

	Cities []GroupCity `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// GroupCity is one city's membership in a group.
type GroupCity struct {
	ID              uint      `json:"-" gorm:"primaryKey"`
	FavoriteGroupID uint      `json:"-" gorm:"index;uniqueIndex:idx_group_city"`
	CityName        string    `json:"city_name" gorm:"uniqueIndex:idx_group_city"`
	CreatedAt       time.Time `json:"-"`
}

// GroupResponse is the wire shape for a group: its name plus the city list.
type GroupResponse struct {
	Name   string   `json:"name"`
	Cities []string `json:"cities"`
}

// ToResponse projects a group and its memberships into the wire shape.
func (g *FavoriteGroup) ToResponse() GroupResponse {
	cities := make([]string, 0, len(g.Cities))
	for _, c := range g.Cities {
		cities = append(cities, c.CityName)
	}
	return GroupResponse{Name: g.Name, Cities: cities}
}
