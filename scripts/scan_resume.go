package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/resumai/internal/config"
	"alfredoptarigan/resumai/internal/services"
)

// Scores a resume file against a job description file from the command line:
//
//	go run ./scripts/scan_resume.go -resume cv.pdf -jd job.txt
func main() {
	resumePath := flag.String("resume", "", "path to the resume (.pdf, .docx, .txt)")
	jdPath := flag.String("jd", "", "path to the job description (plain text)")
	lexicalOnly := flag.Bool("lexical", false, "skip the AI feedback pass")
	flag.Parse()

	if *resumePath == "" || *jdPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Info("🚀 Starting resume scan...")

	extractor := services.NewTextExtractor()

	resumeData, err := os.ReadFile(*resumePath)
	if err != nil {
		log.Fatalf("❌ Failed to read resume: %v", err)
	}
	resumeText, err := extractor.ExtractText(filepath.Base(*resumePath), "", resumeData)
	if err != nil {
		log.Fatalf("❌ Failed to extract resume text: %v", err)
	}

	jdData, err := os.ReadFile(*jdPath)
	if err != nil {
		log.Fatalf("❌ Failed to read job description: %v", err)
	}
	jobDescription := string(jdData)

	if *lexicalOnly {
		score := services.LexicalSimilarity(resumeText, jobDescription)
		fmt.Printf("Keyword match: %.2f%%\n", score*100)
		return
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	gemini, err := services.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, cfg.AI.GeminiAPIVersion)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}
	generator := services.NewGenerationService(cfg.AI.Timeout, cfg.AI.MaxAttempts, gemini)

	result := services.NewATSService(generator, services.NewPromptBuilder()).
		Scan(context.Background(), resumeText, jobDescription)

	fmt.Printf("ATS Match Score: %.2f%% (%s)\n", result.Score, result.Verdict)
	fmt.Printf("Keyword score:   %.2f%%\n", result.LexicalScore*100)
	if len(result.MissingKeywords) > 0 {
		fmt.Printf("Missing:         %s\n", strings.Join(result.MissingKeywords, ", "))
	}
	for _, tip := range result.Suggestions {
		fmt.Printf("  • %s\n", tip)
	}
	if !result.FeedbackAvailable {
		fmt.Println(result.Feedback)
	}

	log.Info("✅ Scan complete")
}
