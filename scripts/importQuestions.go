package main

import (
	"encoding/csv"
	"lms/config"
	"lms/database"
	"lms/engine"
	courseModels "lms/models/course"
	"log"
	"os"
	"strings"
)

// Bulk-imports quiz questions from Questions.csv. Expected columns:
// bank_name, text, option_a, option_b, option_c, option_d, correct_option
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("Questions.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	field := func(row []string, name string) string {
		idx, ok := headerIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	db := database.Database.Db
	banks := make(map[string]uint)

	inserted := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%1000 == 0 && i > 0 {
			log.Printf("Processing row %d...", i+1)
		}

		bankName := field(row, "bank_name")
		text := field(row, "text")
		correct := engine.NormalizeOption(field(row, "correct_option"))

		if bankName == "" || text == "" || correct == "" {
			skipped++
			continue
		}

		bankID, ok := banks[bankName]
		if !ok {
			var bank courseModels.QuestionBank
			if err := db.Where("name = ? AND is_deleted = ?", bankName, false).First(&bank).Error; err != nil {
				bank = courseModels.QuestionBank{Name: bankName}
				if err := db.Create(&bank).Error; err != nil {
					log.Fatalf("Failed to create question bank %q: %v", bankName, err)
				}
			}
			bankID = bank.ID
			banks[bankName] = bankID
		}

		question := courseModels.Question{
			QuestionBankID: bankID,
			Text:           text,
			OptionA:        field(row, "option_a"),
			OptionB:        field(row, "option_b"),
			OptionC:        field(row, "option_c"),
			OptionD:        field(row, "option_d"),
			CorrectOption:  correct,
		}

		if err := db.Create(&question).Error; err != nil {
			log.Printf("Row %d failed: %v", i+2, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import complete: %d inserted, %d skipped", inserted, skipped)
}
