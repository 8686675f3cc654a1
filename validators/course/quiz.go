package courseValidator

import (
	"encoding/json"
	"lms/engine"
	"lms/middleware"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateQuestionBank validator middleware
func CreateQuestionBank() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name string `json:"name"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestionBank", reqData)
		return c.Next()
	}
}

// AddQuestion validator middleware
func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Text          string `json:"text"`
			OptionA       string `json:"option_a"`
			OptionB       string `json:"option_b"`
			OptionC       string `json:"option_c"`
			OptionD       string `json:"option_d"`
			CorrectOption string `json:"correct_option"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Text) == "" {
			errors["text"] = "Question text is required!"
		}

		if reqData.OptionA == "" || reqData.OptionB == "" || reqData.OptionC == "" || reqData.OptionD == "" {
			errors["options"] = "All four options are required!"
		}

		if engine.NormalizeOption(reqData.CorrectOption) == "" {
			errors["correct_option"] = "Correct option must be A, B, C or D!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// QuestionID parses and stores the :questionId route param
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("questionId"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
		}
		c.Locals("questionID", id)
		return c.Next()
	}
}

// CreateQuiz validator middleware
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionBankID uint   `json:"question_bank_id"`
			Title          string `json:"title"`
			NumQuestions   int    `json:"num_questions"`
			PassPercentage *int   `json:"pass_percentage"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.QuestionBankID < 1 {
			errors["question_bank_id"] = "Question bank id is required!"
		}

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.NumQuestions < 1 {
			errors["num_questions"] = "Number of questions must be greater than 0!"
		}

		if reqData.PassPercentage != nil && (*reqData.PassPercentage < 0 || *reqData.PassPercentage > 100) {
			errors["pass_percentage"] = "Pass percentage must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// SetSchedule validator middleware
func SetSchedule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ClassLevel string    `json:"class_level"`
			Level      string    `json:"level"`
			UnlockAt   time.Time `json:"unlock_at"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.ClassLevel) == "" {
			errors["class_level"] = "Class level is required!"
		}

		if engine.NormalizeLevel(reqData.Level) == "" {
			errors["level"] = "Level must contain a number!"
		}

		if reqData.UnlockAt.IsZero() {
			errors["unlock_at"] = "Unlock datetime is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSchedule", reqData)
		return c.Next()
	}
}

// SetValidity validator middleware
func SetValidity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ClassLevel string    `json:"class_level"`
			Level      string    `json:"level"`
			ValidUntil time.Time `json:"valid_until"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.ClassLevel) == "" {
			errors["class_level"] = "Class level is required!"
		}

		if engine.NormalizeLevel(reqData.Level) == "" {
			errors["level"] = "Level must contain a number!"
		}

		if reqData.ValidUntil.IsZero() {
			errors["valid_until"] = "Validity datetime is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedValidity", reqData)
		return c.Next()
	}
}

// SetPassingMark validator middleware
func SetPassingMark() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ClassLevel      string `json:"class_level"`
			Level           string `json:"level"`
			RequiredPercent int    `json:"required_percent"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.ClassLevel) == "" {
			errors["class_level"] = "Class level is required!"
		}

		if engine.NormalizeLevel(reqData.Level) == "" {
			errors["level"] = "Level must contain a number!"
		}

		if reqData.RequiredPercent < 0 || reqData.RequiredPercent > 100 {
			errors["required_percent"] = "Required percent must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPassingMark", reqData)
		return c.Next()
	}
}

// SubmitQuiz validator middleware. Accepts answers either as a list of
// {question_id, selected_option} objects or as a map of question id to
// option, which is what older mobile clients still send.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := new(struct {
			Answers      json.RawMessage `json:"answers"`
			TimeSpentSec int             `json:"time_spent_sec"`
		})
		if err := c.BodyParser(raw); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if raw.TimeSpentSec < 0 {
			errors["time_spent_sec"] = "Time spent cannot be negative!"
		}

		var answers []engine.Answer
		if len(raw.Answers) > 0 {
			if err := json.Unmarshal(raw.Answers, &answers); err != nil {
				var asMap map[string]string
				if err := json.Unmarshal(raw.Answers, &asMap); err != nil {
					errors["answers"] = "Answers must be a list or a map!"
				} else {
					for questionID, selected := range asMap {
						id, err := strconv.ParseUint(questionID, 10, 64)
						if err != nil {
							errors["answers"] = "Answer keys must be question ids!"
							break
						}
						answers = append(answers, engine.Answer{QuestionID: uint(id), Selected: selected})
					}
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			Answers      []engine.Answer
			TimeSpentSec int
		}{
			Answers:      answers,
			TimeSpentSec: raw.TimeSpentSec,
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}
