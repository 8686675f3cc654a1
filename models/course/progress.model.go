package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudentProgress is the per-student-per-course progress record. One row per
// (user, course) pair, created lazily on first interaction. Qualified is only
// ever set together with status "completed" and is never cleared.
type StudentProgress struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID  uint   `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	Status    string `json:"status" gorm:"default:'locked'"` // locked, in_progress, completed
	Qualified bool   `json:"qualified" gorm:"default:false"`
	AttemptID *uint  `json:"attempt_id"` // winning exam attempt
	IsDeleted bool   `gorm:"default:false"`
}

// ExamAttempt is an immutable record of one quiz submission
type ExamAttempt struct {
	gorm.Model
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	QuizID      uint           `json:"quiz_id" gorm:"index;not null"`
	Reference   string         `json:"reference" gorm:"size:36;unique"` // uuid
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	Score       *int           `json:"score"` // percent, 0-100
	Passed      bool           `json:"passed" gorm:"default:false"`
	Answers     datatypes.JSON `json:"answers"`
	IsDeleted   bool           `gorm:"default:false"`
}
