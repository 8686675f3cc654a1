package controllers

import (
	"lms/database"
	"lms/engine"
	"lms/middleware"
	courseModels "lms/models/course"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LevelEntry is one row of the student's level list
type LevelEntry struct {
	CourseID     uint                `json:"course_id"`
	Level        string              `json:"level"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	ThumbnailURL string              `json:"thumbnail_url"`
	Status       string              `json:"status"`
	Qualified    bool                `json:"qualified"`
	Unlock       engine.UnlockStatus `json:"unlock"`
}

// GetMyLevels lists the levels of the student's class with unlock status
func GetMyLevels(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("class_level = ? AND is_published = ? AND is_deleted = ?", user.ClassLevel, true, false).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch levels!", nil)
	}

	var schedules []courseModels.LevelSchedule
	db.Where("class_level = ? AND is_deleted = ?", user.ClassLevel, false).Find(&schedules)
	scheduleByLevel := make(map[string]*courseModels.LevelSchedule, len(schedules))
	for i := range schedules {
		scheduleByLevel[engine.NormalizeLevel(schedules[i].Level)] = &schedules[i]
	}

	var validities []courseModels.QuizValidity
	db.Where("class_level = ? AND is_deleted = ?", user.ClassLevel, false).Find(&validities)
	validityByLevel := make(map[string]*courseModels.QuizValidity, len(validities))
	for i := range validities {
		validityByLevel[engine.NormalizeLevel(validities[i].Level)] = &validities[i]
	}

	var progressRows []courseModels.StudentProgress
	db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Find(&progressRows)
	progressByCourse := make(map[uint]*courseModels.StudentProgress, len(progressRows))
	for i := range progressRows {
		progressByCourse[progressRows[i].CourseID] = &progressRows[i]
	}

	// determine the canonical first level of the class
	firstLevelOrdinal := 0
	for _, course := range courses {
		ord := engine.LevelOrdinal(course.Level)
		if firstLevelOrdinal == 0 || (ord > 0 && ord < firstLevelOrdinal) {
			firstLevelOrdinal = ord
		}
	}

	now := time.Now()
	levels := make([]LevelEntry, 0, len(courses))
	for _, course := range courses {
		level := engine.NormalizeLevel(course.Level)

		var unlockAt, validUntil *time.Time
		if schedule := scheduleByLevel[level]; schedule != nil {
			unlockAt = &schedule.UnlockAt
		}
		if validity := validityByLevel[level]; validity != nil {
			validUntil = &validity.ValidUntil
		}

		var snapshot *engine.ProgressSnapshot
		status := engine.StatusLocked
		qualified := false
		if p := progressByCourse[course.ID]; p != nil {
			snapshot = &engine.ProgressSnapshot{CourseID: p.CourseID, Status: p.Status, Qualified: p.Qualified}
			status = p.Status
			qualified = p.Qualified
		}

		isFirst := engine.LevelOrdinal(course.Level) == firstLevelOrdinal
		unlock := engine.ResolveUnlock(now, unlockAt, validUntil, snapshot, isFirst)

		levels = append(levels, LevelEntry{
			CourseID:     course.ID,
			Level:        level,
			Title:        course.Title,
			Description:  course.Description,
			ThumbnailURL: course.ThumbnailURL,
			Status:       status,
			Qualified:    qualified,
			Unlock:       unlock,
		})
	}

	// present in canonical level order
	for i := 0; i < len(levels); i++ {
		for j := i + 1; j < len(levels); j++ {
			if engine.LevelOrdinal(levels[j].Level) < engine.LevelOrdinal(levels[i].Level) {
				levels[i], levels[j] = levels[j], levels[i]
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Levels fetched successfully!", fiber.Map{
		"class_level": user.ClassLevel,
		"levels":      levels,
	})
}

// GetCourseContent returns videos and PDFs of an unlocked course with the
// student's watched flags.
func GetCourseContent(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This level is locked! "+unlock.UnlockMessage, nil)
	}

	var videos []courseModels.Video
	db.Where("course_id = ? AND is_published = ? AND is_deleted = ?", course.ID, true, false).Order("order_index asc").Find(&videos)

	var pdfs []courseModels.CoursePDF
	db.Where("course_id = ? AND is_published = ? AND is_deleted = ?", course.ID, true, false).Order("order_index asc").Find(&pdfs)

	var watched []courseModels.ContentProgress
	db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).Find(&watched)

	watchedVideos := make(map[uint]bool)
	watchedPDFs := make(map[uint]bool)
	for _, w := range watched {
		switch w.ContentType {
		case "VIDEO":
			watchedVideos[w.ContentID] = true
		case "PDF":
			watchedPDFs[w.ContentID] = true
		}
	}

	type videoEntry struct {
		courseModels.Video
		Watched bool `json:"watched"`
	}
	type pdfEntry struct {
		courseModels.CoursePDF
		Watched bool `json:"watched"`
	}

	videoList := make([]videoEntry, len(videos))
	for i, v := range videos {
		videoList[i] = videoEntry{Video: v, Watched: watchedVideos[v.ID]}
	}
	pdfList := make([]pdfEntry, len(pdfs))
	for i, p := range pdfs {
		pdfList[i] = pdfEntry{CoursePDF: p, Watched: watchedPDFs[p.ID]}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", fiber.Map{
		"course": course,
		"unlock": unlock,
		"videos": videoList,
		"pdfs":   pdfList,
	})
}

// MarkContentWatched records consumption of one video or PDF and advances the
// progress row. The first touch moves locked to in_progress; consuming every
// published item marks the course completed, but qualification only ever
// comes from a passing quiz grade. Progress never moves backwards.
func MarkContentWatched(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)
	contentType := c.Locals("contentType").(string)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	unlock := resolveCourseUnlock(user.ID, &course)
	if unlock.IsLocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This level is locked!", nil)
	}

	switch contentType {
	case "VIDEO":
		var video courseModels.Video
		if err := db.Where("id = ? AND course_id = ? AND is_published = ? AND is_deleted = ?", contentID, course.ID, true, false).First(&video).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
		}
	case "PDF":
		var pdf courseModels.CoursePDF
		if err := db.Where("id = ? AND course_id = ? AND is_published = ? AND is_deleted = ?", contentID, course.ID, true, false).First(&pdf).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "PDF not found!", nil)
		}
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content type!", nil)
	}

	var existing courseModels.ContentProgress
	if err := db.Where("user_id = ? AND course_id = ? AND content_type = ? AND content_id = ? AND is_deleted = ?",
		user.ID, course.ID, contentType, contentID, false).First(&existing).Error; err != nil {
		record := courseModels.ContentProgress{
			UserID:      user.ID,
			CourseID:    course.ID,
			ContentType: contentType,
			ContentID:   uint(contentID),
		}
		if err := db.Create(&record).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
		}
	}

	progress := advanceProgressOnContent(user.ID, &course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded!", fiber.Map{
		"status":    progress.Status,
		"qualified": progress.Qualified,
	})
}

// resolveCourseUnlock loads the schedule and validity rows for a course and
// runs the unlock resolver against the student's progress row.
func resolveCourseUnlock(userID uint, course *courseModels.Course) engine.UnlockStatus {
	db := database.Database.Db
	level := engine.NormalizeLevel(course.Level)

	var unlockAt, validUntil *time.Time

	var schedule courseModels.LevelSchedule
	if err := db.Where("class_level = ? AND level = ? AND is_deleted = ?", course.ClassLevel, level, false).First(&schedule).Error; err == nil {
		unlockAt = &schedule.UnlockAt
	}

	var validity courseModels.QuizValidity
	if err := db.Where("class_level = ? AND level = ? AND is_deleted = ?", course.ClassLevel, level, false).First(&validity).Error; err == nil {
		validUntil = &validity.ValidUntil
	}

	var snapshot *engine.ProgressSnapshot
	var progress courseModels.StudentProgress
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, course.ID, false).First(&progress).Error; err == nil {
		snapshot = &engine.ProgressSnapshot{CourseID: progress.CourseID, Status: progress.Status, Qualified: progress.Qualified}
	}

	var minOrdinal int
	var classCourses []courseModels.Course
	db.Where("class_level = ? AND is_published = ? AND is_deleted = ?", course.ClassLevel, true, false).Find(&classCourses)
	for _, cc := range classCourses {
		ord := engine.LevelOrdinal(cc.Level)
		if minOrdinal == 0 || (ord > 0 && ord < minOrdinal) {
			minOrdinal = ord
		}
	}
	isFirst := engine.LevelOrdinal(course.Level) == minOrdinal

	return engine.ResolveUnlock(time.Now(), unlockAt, validUntil, snapshot, isFirst)
}

// advanceProgressOnContent upserts the progress row after a content touch,
// moving it forward only.
func advanceProgressOnContent(userID uint, course *courseModels.Course) courseModels.StudentProgress {
	db := database.Database.Db

	var progress courseModels.StudentProgress
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, course.ID, false).First(&progress).Error; err != nil {
		progress = courseModels.StudentProgress{
			UserID:   userID,
			CourseID: course.ID,
			Status:   engine.StatusLocked,
		}
		db.Create(&progress)
	}

	if engine.IsForwardTransition(progress.Status, engine.StatusInProgress) {
		progress.Status = engine.StatusInProgress
		db.Save(&progress)
	}

	var totalContent int64
	var videoTotal, pdfTotal int64
	db.Model(&courseModels.Video{}).Where("course_id = ? AND is_published = ? AND is_deleted = ?", course.ID, true, false).Count(&videoTotal)
	db.Model(&courseModels.CoursePDF{}).Where("course_id = ? AND is_published = ? AND is_deleted = ?", course.ID, true, false).Count(&pdfTotal)
	totalContent = videoTotal + pdfTotal

	var consumed int64
	db.Model(&courseModels.ContentProgress{}).Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, course.ID, false).Count(&consumed)

	if totalContent > 0 && consumed >= totalContent && engine.IsForwardTransition(progress.Status, engine.StatusCompleted) {
		// all content consumed: completed, but not qualified. Qualification
		// only comes from a passing grade.
		progress.Status = engine.StatusCompleted
		db.Save(&progress)
	}

	return progress
}
