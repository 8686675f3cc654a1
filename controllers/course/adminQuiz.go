package controllers

import (
	"fmt"
	"lms/cache"
	"lms/database"
	"lms/engine"
	"lms/middleware"
	courseModels "lms/models/course"
	"time"

	"github.com/gofiber/fiber/v2"
)

func quizQuestionsCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:%d:questions", quizID)
}

// CreateQuestionBank creates an empty question pool
func CreateQuestionBank(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuestionBank").(*struct {
		Name string `json:"name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	bank := courseModels.QuestionBank{Name: reqData.Name}
	if err := database.Database.Db.Create(&bank).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question bank!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question bank created successfully!", bank)
}

// AddQuestion adds one question to a bank
func AddQuestion(c *fiber.Ctx) error {
	bankID := c.Locals("bankID").(int)

	db := database.Database.Db

	var bank courseModels.QuestionBank
	if err := db.Where("id = ? AND is_deleted = ?", bankID, false).First(&bank).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question bank not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Text          string `json:"text"`
		OptionA       string `json:"option_a"`
		OptionB       string `json:"option_b"`
		OptionC       string `json:"option_c"`
		OptionD       string `json:"option_d"`
		CorrectOption string `json:"correct_option"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	question := courseModels.Question{
		QuestionBankID: bank.ID,
		Text:           reqData.Text,
		OptionA:        reqData.OptionA,
		OptionB:        reqData.OptionB,
		OptionC:        reqData.OptionC,
		OptionD:        reqData.OptionD,
		CorrectOption:  engine.NormalizeOption(reqData.CorrectOption),
	}

	if err := db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question!", nil)
	}

	// question pools are cached per quiz; drop stale entries
	var quizzes []courseModels.Quiz
	db.Where("question_bank_id = ? AND is_deleted = ?", bank.ID, false).Find(&quizzes)
	for _, quiz := range quizzes {
		cache.Invalidate(c.Context(), quizQuestionsCacheKey(quiz.ID))
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// DeleteQuestion soft-deletes a question from its bank
func DeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	db := database.Database.Db

	var question courseModels.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	question.IsDeleted = true
	if err := db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	var quizzes []courseModels.Quiz
	db.Where("question_bank_id = ? AND is_deleted = ?", question.QuestionBankID, false).Find(&quizzes)
	for _, quiz := range quizzes {
		cache.Invalidate(c.Context(), quizQuestionsCacheKey(quiz.ID))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// CreateQuiz attaches a quiz to a course
func CreateQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		QuestionBankID uint   `json:"question_bank_id"`
		Title          string `json:"title"`
		NumQuestions   int    `json:"num_questions"`
		PassPercentage *int   `json:"pass_percentage"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var bank courseModels.QuestionBank
	if err := db.Where("id = ? AND is_deleted = ?", reqData.QuestionBankID, false).First(&bank).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question bank not found!", nil)
	}

	quiz := courseModels.Quiz{
		CourseID:       course.ID,
		QuestionBankID: bank.ID,
		Title:          reqData.Title,
		NumQuestions:   reqData.NumQuestions,
		PassPercentage: reqData.PassPercentage,
		IsPublished:    true,
	}

	if err := db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// SetLevelSchedule upserts the unlock datetime for a (class, level) pair
func SetLevelSchedule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSchedule").(*struct {
		ClassLevel string    `json:"class_level"`
		Level      string    `json:"level"`
		UnlockAt   time.Time `json:"unlock_at"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db
	level := engine.NormalizeLevel(reqData.Level)

	var schedule courseModels.LevelSchedule
	err := db.Where("class_level = ? AND level = ? AND is_deleted = ?", reqData.ClassLevel, level, false).First(&schedule).Error
	if err != nil {
		schedule = courseModels.LevelSchedule{
			ClassLevel: reqData.ClassLevel,
			Level:      level,
			UnlockAt:   reqData.UnlockAt,
		}
		if err := db.Create(&schedule).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to set schedule!", nil)
		}
	} else {
		schedule.UnlockAt = reqData.UnlockAt
		if err := db.Save(&schedule).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to set schedule!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schedule saved successfully!", schedule)
}

// SetQuizValidity upserts the validity end for a (class, level) pair
func SetQuizValidity(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedValidity").(*struct {
		ClassLevel string    `json:"class_level"`
		Level      string    `json:"level"`
		ValidUntil time.Time `json:"valid_until"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db
	level := engine.NormalizeLevel(reqData.Level)

	var validity courseModels.QuizValidity
	err := db.Where("class_level = ? AND level = ? AND is_deleted = ?", reqData.ClassLevel, level, false).First(&validity).Error
	if err != nil {
		validity = courseModels.QuizValidity{
			ClassLevel: reqData.ClassLevel,
			Level:      level,
			ValidUntil: reqData.ValidUntil,
		}
		if err := db.Create(&validity).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to set validity!", nil)
		}
	} else {
		validity.ValidUntil = reqData.ValidUntil
		if err := db.Save(&validity).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to set validity!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz validity saved successfully!", validity)
}

// SetPassingMark upserts the pass-percentage override for a (class, level)
// pair. It takes precedence over the quiz's own threshold when grading.
func SetPassingMark(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPassingMark").(*struct {
		ClassLevel      string `json:"class_level"`
		Level           string `json:"level"`
		RequiredPercent int    `json:"required_percent"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db
	level := engine.NormalizeLevel(reqData.Level)

	var mark courseModels.PassingMark
	err := db.Where("class_level = ? AND level = ? AND is_deleted = ?", reqData.ClassLevel, level, false).First(&mark).Error
	if err != nil {
		mark = courseModels.PassingMark{
			ClassLevel:      reqData.ClassLevel,
			Level:           level,
			RequiredPercent: reqData.RequiredPercent,
		}
		if err := db.Create(&mark).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to set passing mark!", nil)
		}
	} else {
		mark.RequiredPercent = reqData.RequiredPercent
		if err := db.Save(&mark).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to set passing mark!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Passing mark saved successfully!", mark)
}
