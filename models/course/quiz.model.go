package course

import "gorm.io/gorm"

// Quiz belongs to one course and draws from one question bank
type Quiz struct {
	gorm.Model
	CourseID       uint   `json:"course_id" gorm:"index;not null"`
	QuestionBankID uint   `json:"question_bank_id" gorm:"index;not null"`
	Title          string `json:"title"`
	NumQuestions   int    `json:"num_questions" gorm:"default:0"` // display count
	PassPercentage *int   `json:"pass_percentage"`                // nil = system default
	IsPublished    bool   `json:"is_published" gorm:"default:false"`
	IsDeleted      bool   `gorm:"default:false"`
}

// QuestionBank owns a pool of questions
type QuestionBank struct {
	gorm.Model
	Name      string `json:"name"`
	IsDeleted bool   `gorm:"default:false"`
}

// Question is a four-option multiple choice question
type Question struct {
	gorm.Model
	QuestionBankID uint   `json:"question_bank_id" gorm:"index;not null"`
	Text           string `json:"text" gorm:"type:text"`
	OptionA        string `json:"option_a"`
	OptionB        string `json:"option_b"`
	OptionC        string `json:"option_c"`
	OptionD        string `json:"option_d"`
	CorrectOption  string `json:"-" gorm:"size:1;not null"` // A, B, C or D; never serialized to students
	IsDeleted      bool   `gorm:"default:false"`
}
