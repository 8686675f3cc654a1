package engine

import (
	"math"
	"sort"
)

// DefaultFloorLevel is reported as the current level for students with no
// in-progress course yet.
const DefaultFloorLevel = "1"

// CourseSnapshot is the in-memory view of one course row
type CourseSnapshot struct {
	ID         uint
	ClassLevel string
	Level      string
	Title      string
}

// AttemptSnapshot is the in-memory view of one exam attempt row
type AttemptSnapshot struct {
	QuizID uint
	Score  *int
	Passed bool
}

// LearningPathEntry is the per-course status line on the student dashboard
type LearningPathEntry struct {
	CourseID uint   `json:"course_id"`
	Level    string `json:"level"`
	Title    string `json:"title"`
	Status   string `json:"status"`
}

// StudentSummary is the rolled-up progress view for one student
type StudentSummary struct {
	TotalLevels       int                 `json:"total_levels"`
	LevelsCompleted   int                 `json:"levels_completed"`
	SpiritualProgress int                 `json:"spiritual_progress_percent"`
	KnowledgePoints   int                 `json:"knowledge_points"`
	CurrentLevel      string              `json:"current_level"`
	LearningPath      []LearningPathEntry `json:"learning_path"`
}

// AggregateStudentProgress rolls up a student's progress and attempt rows over
// the courses of their class. Completion counts only qualified completions.
// A class with zero courses aggregates to zero percent.
func AggregateStudentProgress(courses []CourseSnapshot, progress []ProgressSnapshot, attempts []AttemptSnapshot) StudentSummary {
	byCourse := make(map[uint]*ProgressSnapshot, len(progress))
	for i := range progress {
		byCourse[progress[i].CourseID] = &progress[i]
	}

	sorted := make([]CourseSnapshot, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return LevelOrdinal(sorted[i].Level) < LevelOrdinal(sorted[j].Level)
	})

	summary := StudentSummary{
		TotalLevels:  len(courses),
		CurrentLevel: DefaultFloorLevel,
		LearningPath: make([]LearningPathEntry, 0, len(courses)),
	}

	currentSet := false
	for _, c := range sorted {
		p := byCourse[c.ID]
		entryStatus := StatusLocked
		switch {
		case p.Completed():
			entryStatus = StatusCompleted
			summary.LevelsCompleted++
		case p != nil && p.Status == StatusInProgress:
			entryStatus = StatusInProgress
			if !currentSet {
				summary.CurrentLevel = NormalizeLevel(c.Level)
				currentSet = true
			}
		}
		summary.LearningPath = append(summary.LearningPath, LearningPathEntry{
			CourseID: c.ID,
			Level:    NormalizeLevel(c.Level),
			Title:    c.Title,
			Status:   entryStatus,
		})
	}

	if summary.TotalLevels > 0 {
		summary.SpiritualProgress = int(math.Round(float64(summary.LevelsCompleted) / float64(summary.TotalLevels) * 100))
	}

	for _, a := range attempts {
		if a.Score != nil {
			summary.KnowledgePoints += *a.Score
		}
	}

	return summary
}

// StudentRecord is the cohort-aggregation view of one student
type StudentRecord struct {
	ID         uint
	ClassLevel string
	Progress   []ProgressSnapshot
	Attempts   []AttemptSnapshot
}

// DistrictSnapshot is the cohort-aggregation view of one district
type DistrictSnapshot struct {
	ID       uint
	Name     string
	Students []StudentRecord
}

// DistrictPerformance is the rolled-up view of one district
type DistrictPerformance struct {
	DistrictID   uint    `json:"district_id"`
	Name         string  `json:"name"`
	StudentCount int     `json:"student_count"`
	AverageScore float64 `json:"average_score"`
	CompletedAll int     `json:"completed_all"`
}

// AggregateDistrictPerformanceGlobal computes district statistics using the
// total course count across the whole platform as the completion denominator.
// This is the master-admin dashboard formula.
//
// AggregateDistrictPerformanceByClass below uses each student's own class
// course count instead. The two dashboards have always disagreed on this
// denominator; both are kept as separately named operations so neither
// silently changes.
func AggregateDistrictPerformanceGlobal(districts []DistrictSnapshot, totalCourses int) []DistrictPerformance {
	return aggregateDistricts(districts, func(StudentRecord) int { return totalCourses })
}

// AggregateDistrictPerformanceByClass computes district statistics using each
// student's own class course count as the completion denominator. This is the
// district-admin dashboard formula.
func AggregateDistrictPerformanceByClass(districts []DistrictSnapshot, coursesByClass map[string]int) []DistrictPerformance {
	return aggregateDistricts(districts, func(s StudentRecord) int { return coursesByClass[s.ClassLevel] })
}

func aggregateDistricts(districts []DistrictSnapshot, denominator func(StudentRecord) int) []DistrictPerformance {
	result := make([]DistrictPerformance, 0, len(districts))
	for _, d := range districts {
		perf := DistrictPerformance{
			DistrictID:   d.ID,
			Name:         d.Name,
			StudentCount: len(d.Students),
		}

		scoreSum := 0
		scoreCount := 0
		for _, s := range d.Students {
			completed := 0
			for _, p := range s.Progress {
				if p.Completed() {
					completed++
				}
			}
			if denom := denominator(s); denom > 0 && completed >= denom {
				perf.CompletedAll++
			}
			for _, a := range s.Attempts {
				if a.Score != nil {
					scoreSum += *a.Score
					scoreCount++
				}
			}
		}
		if scoreCount > 0 {
			perf.AverageScore = math.Round(float64(scoreSum)/float64(scoreCount)*100) / 100
		}

		result = append(result, perf)
	}
	return result
}
