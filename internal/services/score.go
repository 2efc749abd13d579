package services

import (
	"math"

	"github.com/danivc/BioHackerBack/internal/models"
)

// scoreWindowDays is the trailing window the wellness score is derived from.
// It is a hard cutoff, not a decay: entries inside the window weigh equally,
// entries outside contribute nothing.
const scoreWindowDays = 7

// CompositeScore aggregates a window of biometric entries into a single
// [0,100] wellness score: each entry scores
// (sleep + energy + (100 - stress) + focus + mood) / 5 with absent metrics
// counted as 0, and the result is the rounded mean over the window.
//
// Note the inherited asymmetry: an absent stress level contributes 100 via
// the (100 - 0) term, while every other absent metric contributes 0. This
// matches the historical scoring and changing it would shift every existing
// score, so it stays until product says otherwise.
//
// Returns ok=false for an empty window; callers keep the previous score in
// that case rather than resetting it.
func CompositeScore(window []models.Biometric) (score int, ok bool) {
	if len(window) == 0 {
		return 0, false
	}

	total := 0.0
	for _, b := range window {
		sum := metricValue(b.SleepQuality) +
			metricValue(b.EnergyLevel) +
			(100 - metricValue(b.StressLevel)) +
			metricValue(b.FocusLevel) +
			metricValue(b.MoodLevel)
		total += float64(sum) / 5
	}

	return int(math.Round(total / float64(len(window)))), true
}

func metricValue(m *int) int {
	if m == nil {
		return 0
	}
	return *m
}
