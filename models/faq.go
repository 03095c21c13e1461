package models

import "time"

type Faq struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionIT string    `gorm:"not null" json:"question_it"`
	QuestionEN string    `gorm:"not null" json:"question_en"`
	AnswerIT   string    `gorm:"not null" json:"answer_it"`
	AnswerEN   string    `gorm:"not null" json:"answer_en"`
	SortOrder  int       `gorm:"index" json:"sort_order"`
	Active     bool      `gorm:"default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
