package model

import "strings"

// categoryRules is evaluated top-down; the first rule whose keywords match
// wins, so "Quiz Discussion" resolves to quiz, never discussion.
var categoryRules = []struct {
	keywords []string
	category string
}{
	{[]string{"quiz"}, CategoryQuiz},
	{[]string{"discussion"}, CategoryDiscussion},
	{[]string{"essay", "paper"}, CategoryEssay},
	{[]string{"project", "presentation"}, CategoryProject},
	{[]string{"exam", "test", "midterm", "final"}, CategoryExam},
	{[]string{"reading", "read"}, CategoryReading},
}

// ResolveCategory infers a category from the item title and, failing that,
// the upstream type field. It always returns one of the Category constants.
func ResolveCategory(title, itemType string) string {
	title = strings.ToLower(title)
	itemType = strings.ToLower(itemType)

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(title, kw) {
				return rule.category
			}
		}
	}

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if itemType == kw || strings.Contains(itemType, kw) {
				return rule.category
			}
		}
	}

	return CategoryAssignment
}
