package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrInt(n int) *int { return &n }

func fourQuestions() []QuestionSnapshot {
	return []QuestionSnapshot{
		{ID: 1, CorrectOption: "A"},
		{ID: 2, CorrectOption: "B"},
		{ID: 3, CorrectOption: "C"},
		{ID: 4, CorrectOption: "D"},
	}
}

func TestGradeSubmissionEndToEnd(t *testing.T) {
	quiz := QuizSnapshot{ID: 5, CourseID: 9, PassPercentage: ptrInt(70)}
	answers := []Answer{
		{QuestionID: 1, Selected: "A"},
		{QuestionID: 2, Selected: "B"},
		{QuestionID: 3, Selected: "X"},
		{QuestionID: 4, Selected: "D"},
	}

	result, attempt, upsert := GradeSubmission(quiz, fourQuestions(), answers, nil, 42, testNow, 5*time.Minute)

	assert.Equal(t, 75, result.Score)
	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, 70, result.RequiredPercent)
	assert.True(t, result.Passed)

	assert.Equal(t, uint(42), attempt.UserID)
	assert.Equal(t, uint(5), attempt.QuizID)
	assert.NotEmpty(t, attempt.Reference)
	assert.Equal(t, testNow, attempt.CompletedAt)
	assert.Equal(t, testNow.Add(-5*time.Minute), attempt.StartedAt)
	assert.Equal(t, 75, attempt.Score)
	assert.True(t, attempt.Passed)

	require.NotNil(t, upsert)
	assert.Equal(t, uint(42), upsert.UserID)
	assert.Equal(t, uint(9), upsert.CourseID)
	assert.Equal(t, StatusCompleted, upsert.Status)
	assert.True(t, upsert.Qualified)
}

func TestGradeSubmissionOrderInvariant(t *testing.T) {
	quiz := QuizSnapshot{ID: 1, CourseID: 1}
	answers := []Answer{
		{QuestionID: 3, Selected: "c"},
		{QuestionID: 1, Selected: "a"},
		{QuestionID: 4, Selected: "B"},
		{QuestionID: 2, Selected: "B"},
	}
	reversed := []Answer{answers[3], answers[2], answers[1], answers[0]}

	r1, _, _ := GradeSubmission(quiz, fourQuestions(), answers, nil, 1, testNow, 0)
	r2, _, _ := GradeSubmission(quiz, fourQuestions(), reversed, nil, 1, testNow, 0)
	assert.Equal(t, r1, r2)
	assert.Equal(t, 3, r1.CorrectCount)
}

func TestGradeSubmissionThresholdPrecedence(t *testing.T) {
	questions := fourQuestions()
	answers := []Answer{
		{QuestionID: 1, Selected: "A"},
		{QuestionID: 2, Selected: "B"},
		{QuestionID: 3, Selected: "C"},
	} // 75%

	// override wins over the quiz's own threshold
	quiz := QuizSnapshot{ID: 1, CourseID: 1, PassPercentage: ptrInt(50)}
	result, _, _ := GradeSubmission(quiz, questions, answers, ptrInt(80), 1, testNow, 0)
	assert.Equal(t, 80, result.RequiredPercent)
	assert.False(t, result.Passed)

	// quiz threshold applies when no override
	result, _, _ = GradeSubmission(quiz, questions, answers, nil, 1, testNow, 0)
	assert.Equal(t, 50, result.RequiredPercent)
	assert.True(t, result.Passed)

	// system default when neither is present
	result, _, _ = GradeSubmission(QuizSnapshot{ID: 1, CourseID: 1}, questions, answers, nil, 1, testNow, 0)
	assert.Equal(t, 70, result.RequiredPercent)
	assert.True(t, result.Passed)
}

func TestGradeSubmissionZeroQuestions(t *testing.T) {
	quiz := QuizSnapshot{ID: 1, CourseID: 1}
	answers := []Answer{{QuestionID: 99, Selected: "A"}}

	result, attempt, upsert := GradeSubmission(quiz, nil, answers, nil, 1, testNow, 0)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)
	assert.False(t, attempt.Passed)
	assert.Nil(t, upsert, "an ungraded quiz must not transition progress")
}

func TestGradeSubmissionMalformedAnswers(t *testing.T) {
	quiz := QuizSnapshot{ID: 1, CourseID: 1}

	// empty submission grades as zero correct, not an error
	result, _, upsert := GradeSubmission(quiz, fourQuestions(), nil, nil, 1, testNow, 0)
	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)
	assert.Nil(t, upsert)

	// garbage selections grade as wrong
	answers := []Answer{
		{QuestionID: 1, Selected: "??"},
		{QuestionID: 2, Selected: ""},
		{QuestionID: 3, Selected: "E"},
	}
	result, _, _ = GradeSubmission(quiz, fourQuestions(), answers, nil, 1, testNow, 0)
	assert.Equal(t, 0, result.CorrectCount)
}

func TestGradeSubmissionIndexAnswers(t *testing.T) {
	// 1-based index payloads grade identically to letter payloads
	quiz := QuizSnapshot{ID: 1, CourseID: 1}
	answers := []Answer{
		{QuestionID: 1, Selected: "1"},
		{QuestionID: 2, Selected: "2"},
		{QuestionID: 3, Selected: "3"},
		{QuestionID: 4, Selected: "4"},
	}
	result, _, _ := GradeSubmission(quiz, fourQuestions(), answers, nil, 1, testNow, 0)
	assert.Equal(t, 4, result.CorrectCount)
	assert.Equal(t, 100, result.Score)
}

func TestGradeSubmissionFailedGradeLeavesProgressAlone(t *testing.T) {
	quiz := QuizSnapshot{ID: 1, CourseID: 1}
	answers := []Answer{{QuestionID: 1, Selected: "A"}} // 25%

	for i := 0; i < 3; i++ {
		_, _, upsert := GradeSubmission(quiz, fourQuestions(), answers, nil, 1, testNow, 0)
		assert.Nil(t, upsert, "failed grades emit no progress command")
	}
}

func TestAttemptPolicy(t *testing.T) {
	unlimited := AttemptPolicy{}
	assert.True(t, unlimited.Allows(0))
	assert.True(t, unlimited.Allows(1000))

	capped := AttemptPolicy{MaxAttempts: 3}
	assert.True(t, capped.Allows(0))
	assert.True(t, capped.Allows(2))
	assert.False(t, capped.Allows(3))
}

func TestNormalizeOption(t *testing.T) {
	tests := map[string]string{
		"A": "A", "a": "A", " b ": "B", "C": "C", "d": "D",
		"1": "A", "2": "B", "3": "C", "4": "D",
		"": "", "E": "", "5": "", "AB": "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeOption(in), "input %q", in)
	}
}
