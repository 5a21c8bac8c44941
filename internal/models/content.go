package models

import (
	"strconv"
	"strings"
)

// ContentItem is one catalog entry. Optional fields are empty strings when
// the sample data leaves them out.
type ContentItem struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Image       string `gorm:"not null" json:"image"`
	Year        string `json:"year,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Category    string `gorm:"index" json:"category,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Row         string `gorm:"index" json:"row,omitempty"`
	Position    int    `json:"position"`
}

func (ContentItem) TableName() string {
	return "content_items"
}

// YearValue parses Year as an integer; unparsable or missing years are 0.
func (c ContentItem) YearValue() int {
	y, err := strconv.Atoi(strings.TrimSpace(c.Year))
	if err != nil {
		return 0
	}
	return y
}

type Category struct {
	ID    string
	Name  string
	Count int
}

// ContentDetails is what the watch page shows for an item.
type ContentDetails struct {
	ContentItem
	FullDescription string
	Director        string
	Cast            []string
	Language        string
	Subtitles       []string
	ReleaseDate     string
	Rating          string
	Genres          []string
}
