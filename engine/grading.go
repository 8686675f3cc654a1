package engine

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPassPercent is the fallback threshold when neither a passing-mark
// override nor a quiz-level threshold is configured.
const DefaultPassPercent = 70

// QuizSnapshot is the in-memory view of one quiz row
type QuizSnapshot struct {
	ID             uint
	CourseID       uint
	PassPercentage *int
}

// QuestionSnapshot carries only what grading needs from a question row
type QuestionSnapshot struct {
	ID            uint
	CorrectOption string
}

// Answer is one submitted (question, selected option) pair. Selected accepts
// an option letter ("A".."D", any case) or a 1-based index ("1".."4");
// anything else grades as wrong.
type Answer struct {
	QuestionID uint   `json:"question_id"`
	Selected   string `json:"selected_option"`
}

// GradeResult is the outcome of scoring one submission
type GradeResult struct {
	Score           int  `json:"score"`
	CorrectCount    int  `json:"correct_count"`
	TotalQuestions  int  `json:"total_questions"`
	RequiredPercent int  `json:"required_percent"`
	Passed          bool `json:"passed"`
}

// AttemptRecord is the write command for the exam attempt row
type AttemptRecord struct {
	UserID      uint
	QuizID      uint
	Reference   string
	StartedAt   time.Time
	CompletedAt time.Time
	Score       int
	Passed      bool
}

// ProgressUpsert is the write command for the progress transition on a pass
type ProgressUpsert struct {
	UserID    uint
	CourseID  uint
	Status    string
	Qualified bool
}

// AttemptPolicy caps quiz attempts per student. The platform default is
// unlimited (MaxAttempts 0); a cap can be configured without code changes.
type AttemptPolicy struct {
	MaxAttempts int
}

// Allows reports whether another attempt may be made after priorAttempts
func (p AttemptPolicy) Allows(priorAttempts int) bool {
	return p.MaxAttempts <= 0 || priorAttempts < p.MaxAttempts
}

// NormalizeOption maps a submitted option to its canonical letter. Both
// submission payload shapes in the wild use either letters or 1-based
// indexes, so both are accepted here; unknown values normalize to "".
func NormalizeOption(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "A", "1":
		return "A"
	case "B", "2":
		return "B"
	case "C", "3":
		return "C"
	case "D", "4":
		return "D"
	}
	return ""
}

// GradeSubmission scores a submission against the question set, decides
// pass/fail and returns the attempt write command plus, on a pass, the
// progress-upsert write command. It performs no I/O.
//
// A quiz with zero questions scores 0 and never passes. Malformed or missing
// answers count as zero correct rather than erroring. The threshold
// precedence is passOverride, then the quiz's own percentage, then
// DefaultPassPercent. A failed grade produces no progress command at all, so
// repeated submissions can never move a completed row backwards.
func GradeSubmission(quiz QuizSnapshot, questions []QuestionSnapshot, answers []Answer, passOverride *int, userID uint, now time.Time, timeSpent time.Duration) (GradeResult, AttemptRecord, *ProgressUpsert) {
	selected := make(map[uint]string, len(answers))
	for _, a := range answers {
		selected[a.QuestionID] = NormalizeOption(a.Selected)
	}

	result := GradeResult{TotalQuestions: len(questions)}
	for _, q := range questions {
		if selected[q.ID] != "" && selected[q.ID] == NormalizeOption(q.CorrectOption) {
			result.CorrectCount++
		}
	}

	if result.TotalQuestions > 0 {
		result.Score = int(math.Round(float64(result.CorrectCount) / float64(result.TotalQuestions) * 100))
	}

	result.RequiredPercent = DefaultPassPercent
	if quiz.PassPercentage != nil {
		result.RequiredPercent = *quiz.PassPercentage
	}
	if passOverride != nil {
		result.RequiredPercent = *passOverride
	}

	result.Passed = result.TotalQuestions > 0 && result.Score >= result.RequiredPercent

	startedAt := now
	if timeSpent > 0 {
		startedAt = now.Add(-timeSpent)
	}
	attempt := AttemptRecord{
		UserID:      userID,
		QuizID:      quiz.ID,
		Reference:   uuid.NewString(),
		StartedAt:   startedAt,
		CompletedAt: now,
		Score:       result.Score,
		Passed:      result.Passed,
	}

	var upsert *ProgressUpsert
	if result.Passed {
		upsert = &ProgressUpsert{
			UserID:    userID,
			CourseID:  quiz.CourseID,
			Status:    StatusCompleted,
			Qualified: true,
		}
	}

	return result, attempt, upsert
}
