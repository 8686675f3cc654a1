package controllers

import (
	"encoding/json"
	"lms/cache"
	"lms/config"
	"lms/database"
	"lms/engine"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// QuestionView is a question as served to students: no correct option
type QuestionView struct {
	ID      uint   `json:"id"`
	Text    string `json:"text"`
	OptionA string `json:"option_a"`
	OptionB string `json:"option_b"`
	OptionC string `json:"option_c"`
	OptionD string `json:"option_d"`
}

// questionsForQuiz returns the quiz's question set in a stable order,
// truncated to the quiz's display count when one is configured. Grading uses
// the same helper so the graded set always matches the served set.
func questionsForQuiz(quiz *courseModels.Quiz) ([]courseModels.Question, error) {
	var questions []courseModels.Question
	query := database.Database.Db.
		Where("question_bank_id = ? AND is_deleted = ?", quiz.QuestionBankID, false).
		Order("id asc")
	if quiz.NumQuestions > 0 {
		query = query.Limit(quiz.NumQuestions)
	}
	err := query.Find(&questions).Error
	return questions, err
}

// GetQuiz serves the quiz of a course with its question set
func GetQuiz(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.ClassLevel != user.ClassLevel {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This course is not part of your class!", nil)
	}

	unlock := resolveCourseUnlock(user.ID, &course)
	if unlock.IsLocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This level is locked!", nil)
	}

	var quiz courseModels.Quiz
	if err := db.Where("course_id = ? AND is_published = ? AND is_deleted = ?", course.ID, true, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	// question pools change rarely; serve them through the cache
	var views []QuestionView
	err := cache.GetOrLoad(c.Context(), quizQuestionsCacheKey(quiz.ID), 10*time.Minute, &views, func() (interface{}, error) {
		questions, err := questionsForQuiz(&quiz)
		if err != nil {
			return nil, err
		}
		loaded := make([]QuestionView, len(questions))
		for i, q := range questions {
			loaded[i] = QuestionView{
				ID:      q.ID,
				Text:    q.Text,
				OptionA: q.OptionA,
				OptionB: q.OptionB,
				OptionC: q.OptionC,
				OptionD: q.OptionD,
			}
		}
		return loaded, nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz": fiber.Map{
			"id":            quiz.ID,
			"title":         quiz.Title,
			"num_questions": len(views),
		},
		"questions": views,
		"validity":  unlock.ValidityMessage,
	})
}

// SubmitQuiz grades a submission, records the attempt and, on a pass,
// transitions the progress row to completed and qualified.
func SubmitQuiz(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedSubmission").(*struct {
		Answers      []engine.Answer
		TimeSpentSec int
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.ClassLevel != user.ClassLevel {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This course is not part of your class!", nil)
	}

	unlock := resolveCourseUnlock(user.ID, &course)
	if unlock.IsLocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This level is locked!", nil)
	}
	if unlock.IsExpired {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The quiz validity period for this level has expired!", nil)
	}

	var quiz courseModels.Quiz
	if err := db.Where("course_id = ? AND is_published = ? AND is_deleted = ?", course.ID, true, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	policy := engine.AttemptPolicy{MaxAttempts: config.AppConfig.MaxQuizAttempts}
	var priorAttempts int64
	db.Model(&courseModels.ExamAttempt{}).Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", user.ID, quiz.ID, false).Count(&priorAttempts)
	if !policy.Allows(int(priorAttempts)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Maximum quiz attempts reached!", nil)
	}

	questions, err := questionsForQuiz(&quiz)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	snapshots := make([]engine.QuestionSnapshot, len(questions))
	for i, q := range questions {
		snapshots[i] = engine.QuestionSnapshot{ID: q.ID, CorrectOption: q.CorrectOption}
	}

	// a class/level passing mark overrides the quiz's own threshold
	var passOverride *int
	var mark courseModels.PassingMark
	if err := db.Where("class_level = ? AND level = ? AND is_deleted = ?", course.ClassLevel, engine.NormalizeLevel(course.Level), false).First(&mark).Error; err == nil {
		passOverride = &mark.RequiredPercent
	}
	if passOverride == nil && quiz.PassPercentage == nil {
		passOverride = &config.AppConfig.DefaultPassPercent
	}

	quizSnapshot := engine.QuizSnapshot{ID: quiz.ID, CourseID: course.ID, PassPercentage: quiz.PassPercentage}
	result, attemptCmd, progressCmd := engine.GradeSubmission(
		quizSnapshot, snapshots, reqData.Answers, passOverride,
		user.ID, time.Now(), time.Duration(reqData.TimeSpentSec)*time.Second,
	)

	answersJSON, _ := json.Marshal(reqData.Answers)

	tx := db.Begin()

	attempt := courseModels.ExamAttempt{
		UserID:      attemptCmd.UserID,
		QuizID:      attemptCmd.QuizID,
		Reference:   attemptCmd.Reference,
		StartedAt:   attemptCmd.StartedAt,
		CompletedAt: attemptCmd.CompletedAt,
		Score:       &attemptCmd.Score,
		Passed:      attemptCmd.Passed,
		Answers:     datatypes.JSON(answersJSON),
	}
	if err := tx.Create(&attempt).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	if progressCmd != nil {
		var progress courseModels.StudentProgress
		if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).First(&progress).Error; err != nil {
			progress = courseModels.StudentProgress{
				UserID:   progressCmd.UserID,
				CourseID: progressCmd.CourseID,
			}
		}
		// the transition is monotonic: completed+qualified is terminal. The
		// winning attempt is the one that caused the transition.
		wasQualified := progress.Qualified
		progress.Status = progressCmd.Status
		progress.Qualified = progressCmd.Qualified
		if !wasQualified || progress.AttemptID == nil {
			progress.AttemptID = &attempt.ID
		}
		if progress.ID == 0 {
			if err := tx.Create(&progress).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
			}
		} else {
			if err := tx.Save(&progress).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	utils.SendQuizResultEmail(user.Email, user.Name, course.Title, result.Score, result.Passed)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"result":    result,
		"reference": attempt.Reference,
	})
}

// GetMyAttempts lists the student's attempts for a course's quiz
func GetMyAttempts(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var attempts []courseModels.ExamAttempt
	if err := db.Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", user.ID, quiz.ID, false).
		Order("completed_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
	})
}
