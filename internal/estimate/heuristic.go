package estimate

import (
	"strings"

	"courseload/internal/model"
)

type categoryWeights struct {
	base     int
	perPoint int
}

var heuristicTable = map[string]categoryWeights{
	model.CategoryQuiz:       {base: 30, perPoint: 1},
	model.CategoryDiscussion: {base: 45, perPoint: 2},
	model.CategoryAssignment: {base: 60, perPoint: 3},
	model.CategoryEssay:      {base: 120, perPoint: 5},
	model.CategoryProject:    {base: 180, perPoint: 8},
	model.CategoryExam:       {base: 90, perPoint: 2},
	model.CategoryReading:    {base: 30, perPoint: 1},
}

var defaultWeights = categoryWeights{base: 60, perPoint: 2}

const (
	minMinutes = 15
	maxMinutes = 480

	uploadBonus = 15
	mediaBonus  = 30
)

// HeuristicEstimate computes a table-driven duration for an item. It is
// deterministic, never fails, and always lands in [15, 480].
func HeuristicEstimate(item model.WorkItem) int {
	category := item.Category
	if category == "" {
		category = model.ResolveCategory(item.Title, item.Type)
	}

	weights, ok := heuristicTable[category]
	if !ok {
		weights = defaultWeights
	}

	var points float64
	if item.PointsPossible != nil {
		points = *item.PointsPossible
	}

	minutes := weights.base + int(points*float64(weights.perPoint))

	if hasModality(item.SubmissionTypes, "upload") {
		minutes += uploadBonus
	}
	if hasModality(item.SubmissionTypes, "media_recording") {
		minutes += mediaBonus
	}

	if minutes < minMinutes {
		return minMinutes
	}
	if minutes > maxMinutes {
		return maxMinutes
	}
	return minutes
}

func hasModality(submissionTypes []string, keyword string) bool {
	for _, st := range submissionTypes {
		if strings.Contains(st, keyword) {
			return true
		}
	}
	return false
}
