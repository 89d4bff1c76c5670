package llm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"courseload/internal/model"
)

const descriptionLimit = 500

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// BuildPrompt renders the estimation instruction block for one item. The
// output is deterministic for a given item so repeated calls hit the
// backend with identical input.
func BuildPrompt(item model.WorkItem) string {
	var sb strings.Builder

	sb.WriteString("You are estimating how long a piece of coursework will take a typical college student to complete.\n\n")
	fmt.Fprintf(&sb, "Assignment: %s\n", item.Title)
	fmt.Fprintf(&sb, "Category: %s\n", item.Category)
	fmt.Fprintf(&sb, "Course: %s\n", item.CourseName)

	if item.PointsPossible != nil {
		fmt.Fprintf(&sb, "Points possible: %s\n", strconv.FormatFloat(*item.PointsPossible, 'f', -1, 64))
	}
	if len(item.SubmissionTypes) > 0 {
		fmt.Fprintf(&sb, "Submission types: %s\n", strings.Join(item.SubmissionTypes, ", "))
	}
	if snippet := descriptionSnippet(item.Description); snippet != "" {
		fmt.Fprintf(&sb, "Description: %s\n", snippet)
	}

	sb.WriteString("\nRespond with a single line of JSON and nothing else: {\"minutes\": <integer>, \"reasoning\": \"<one short sentence>\"}\n")
	sb.WriteString("Most items take 30-240 minutes; estimate longer only for major projects or papers.")

	return sb.String()
}

// descriptionSnippet strips HTML tags, collapses whitespace, and truncates
// to keep the prompt small regardless of how verbose the course page is.
func descriptionSnippet(description string) string {
	text := htmlTagPattern.ReplaceAllString(description, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) > descriptionLimit {
		text = string(runes[:descriptionLimit]) + "..."
	}
	return text
}
