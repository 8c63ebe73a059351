package model

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

const DefaultLanguage = "English"

var languageNames = map[lingua.Language]string{
	lingua.English:    "English",
	lingua.French:     "French",
	lingua.German:     "German",
	lingua.Spanish:    "Spanish",
	lingua.Italian:    "Italian",
	lingua.Portuguese: "Portuguese",
	lingua.Dutch:      "Dutch",
}

var detector lingua.LanguageDetector
var detectorOnce sync.Once

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		languages := make([]lingua.Language, 0, len(languageNames))
		for l := range languageNames {
			languages = append(languages, l)
		}
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build()
	})
	return detector
}

// DetectLanguage names the language of text for use in a prompt, falling
// back to English when detection isn't reliable.
func DetectLanguage(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultLanguage
	}

	language, ok := getDetector().DetectLanguageOf(text)
	if !ok {
		return DefaultLanguage
	}

	name, ok := languageNames[language]
	if !ok {
		return DefaultLanguage
	}
	return name
}
