package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateStudentProgress(t *testing.T) {
	courses := []CourseSnapshot{
		{ID: 3, ClassLevel: "6th", Level: "Level 3", Title: "Level 3"},
		{ID: 1, ClassLevel: "6th", Level: "1", Title: "Level 1"},
		{ID: 2, ClassLevel: "6th", Level: "Level 2", Title: "Level 2"},
	}
	progress := []ProgressSnapshot{
		{CourseID: 1, Status: StatusCompleted, Qualified: true},
		{CourseID: 2, Status: StatusInProgress},
	}
	attempts := []AttemptSnapshot{
		{QuizID: 1, Score: ptrInt(80), Passed: true},
		{QuizID: 2, Score: ptrInt(40)},
		{QuizID: 2, Score: nil}, // unscored attempts carry no points
	}

	got := AggregateStudentProgress(courses, progress, attempts)

	assert.Equal(t, 3, got.TotalLevels)
	assert.Equal(t, 1, got.LevelsCompleted)
	assert.Equal(t, 33, got.SpiritualProgress)
	assert.Equal(t, 120, got.KnowledgePoints)
	assert.Equal(t, "2", got.CurrentLevel)

	require.Len(t, got.LearningPath, 3)
	// sorted by canonical level order regardless of input order or format
	assert.Equal(t, []string{"1", "2", "3"}, []string{got.LearningPath[0].Level, got.LearningPath[1].Level, got.LearningPath[2].Level})
	assert.Equal(t, StatusCompleted, got.LearningPath[0].Status)
	assert.Equal(t, StatusInProgress, got.LearningPath[1].Status)
	assert.Equal(t, StatusLocked, got.LearningPath[2].Status)
}

func TestAggregateStudentProgressZeroCourses(t *testing.T) {
	got := AggregateStudentProgress(nil, nil, nil)
	assert.Equal(t, 0, got.SpiritualProgress, "zero courses must not divide by zero")
	assert.Equal(t, 0, got.TotalLevels)
	assert.Equal(t, DefaultFloorLevel, got.CurrentLevel)
	assert.Empty(t, got.LearningPath)
}

func TestAggregateStudentProgressUnqualifiedCompletionNotCounted(t *testing.T) {
	courses := []CourseSnapshot{{ID: 1, Level: "1"}, {ID: 2, Level: "2"}}
	progress := []ProgressSnapshot{
		{CourseID: 1, Status: StatusCompleted, Qualified: false}, // visited only
	}
	got := AggregateStudentProgress(courses, progress, nil)
	assert.Equal(t, 0, got.LevelsCompleted)
	assert.Equal(t, 0, got.SpiritualProgress)
	assert.Equal(t, StatusLocked, got.LearningPath[0].Status)
}

func districtFixture() []DistrictSnapshot {
	return []DistrictSnapshot{
		{
			ID: 1, Name: "North",
			Students: []StudentRecord{
				{
					ID: 10, ClassLevel: "6th",
					Progress: []ProgressSnapshot{
						{CourseID: 1, Status: StatusCompleted, Qualified: true},
						{CourseID: 2, Status: StatusCompleted, Qualified: true},
					},
					Attempts: []AttemptSnapshot{{Score: ptrInt(90)}, {Score: ptrInt(70)}},
				},
				{
					ID: 11, ClassLevel: "7th",
					Progress: []ProgressSnapshot{
						{CourseID: 3, Status: StatusCompleted, Qualified: true},
					},
					Attempts: []AttemptSnapshot{{Score: ptrInt(50)}, {Score: nil}},
				},
			},
		},
		{ID: 2, Name: "South"},
	}
}

func TestAggregateDistrictPerformanceGlobal(t *testing.T) {
	// 3 courses exist platform-wide: only the student with 3 completions
	// would count, so here nobody completes "all".
	got := AggregateDistrictPerformanceGlobal(districtFixture(), 3)

	require.Len(t, got, 2)
	assert.Equal(t, "North", got[0].Name)
	assert.Equal(t, 2, got[0].StudentCount)
	assert.Equal(t, 70.0, got[0].AverageScore) // (90+70+50)/3
	assert.Equal(t, 0, got[0].CompletedAll)

	assert.Equal(t, "South", got[1].Name)
	assert.Equal(t, 0, got[1].StudentCount)
	assert.Equal(t, 0.0, got[1].AverageScore)
}

func TestAggregateDistrictPerformanceByClass(t *testing.T) {
	// 6th grade has 2 courses, 7th grade has 1: both students have completed
	// everything their own class offers.
	got := AggregateDistrictPerformanceByClass(districtFixture(), map[string]int{"6th": 2, "7th": 1})

	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].CompletedAll)
}

func TestAggregateDistrictPerformanceZeroDenominator(t *testing.T) {
	// a class with no courses can never count as fully completed
	got := AggregateDistrictPerformanceByClass(districtFixture(), map[string]int{})
	assert.Equal(t, 0, got[0].CompletedAll)

	got = AggregateDistrictPerformanceGlobal(districtFixture(), 0)
	assert.Equal(t, 0, got[0].CompletedAll)
}
