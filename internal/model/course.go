package model

type Course struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"column:course_code;uniqueIndex;not null" json:"code"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Credits     int    `json:"credits"`
}

func (Course) TableName() string {
	return "course"
}

// Label is the "<code> - <title>" form students are enrolled under.
func (c Course) Label() string {
	return c.Code + " - " + c.Title
}
