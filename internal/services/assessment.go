package services

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

var (
	moodPattern        = regexp.MustCompile(`(?i)mood:\s*(\w+)`)
	stressLevelPattern = regexp.MustCompile(`(?i)stress_level:\s*(\d+)`)
)

const moodUnknown = "Unknown"

// MoodAssessment is the per-session signal pulled out of generated text:
// a mood label and a 0-5 stress rating.
type MoodAssessment struct {
	Mood        string
	StressLevel int
}

// ParseMoodAndStress scans generated text for "mood: <word>" and
// "stress_level: <n>" anywhere in the body, in either order. Malformed
// input is not an error: a missing mood degrades to Unknown and a
// missing rating to 0, and callers treat that pair as "no actionable
// signal" rather than a failure.
func ParseMoodAndStress(rawText string) MoodAssessment {
	assessment := MoodAssessment{Mood: moodUnknown}

	if match := moodPattern.FindStringSubmatch(rawText); match != nil {
		assessment.Mood = capitalizeMoodWord(match[1])
	}
	if match := stressLevelPattern.FindStringSubmatch(rawText); match != nil {
		if parsed, err := strconv.Atoi(match[1]); err == nil {
			assessment.StressLevel = parsed
		}
	}

	log.Printf("assessment: parsed mood=%s stress_level=%d", assessment.Mood, assessment.StressLevel)
	return assessment
}

func capitalizeMoodWord(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
