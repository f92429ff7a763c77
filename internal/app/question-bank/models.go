package question_bank

import "time"

type Quiz struct {
	ID        uint64 `gorm:"primaryKey"`
	Title     string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Quiz) TableName() string { return "quizzes" }

type QuizQuestion struct {
	ID        uint64       `gorm:"primaryKey"`
	QuizID    uint64       `gorm:"not null;index"`
	Question  *string      `gorm:"type:text"`
	ImagePath *string      `gorm:"size:1024"`
	Position  int          `gorm:"not null;default:0"`
	Options   []QuizOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (QuizQuestion) TableName() string { return "quiz_questions" }

type QuizOption struct {
	ID         uint64  `gorm:"primaryKey"`
	QuestionID uint64  `gorm:"not null;index"`
	OptionText *string `gorm:"type:text"`
	ImagePath  *string `gorm:"size:1024"`
	IsCorrect  bool    `gorm:"not null;default:false"`
	Position   int     `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (QuizOption) TableName() string { return "quiz_question_options" }
