package utils

import (
	"math"
	"time"
)

type RankConfig struct {
	Gravity        float64
	WeightComment  float64
	WeightReaction float64
	ScaleFactor    float64
}

var DefaultConfig = RankConfig{
	Gravity:        1.5,
	WeightComment:  2.0,
	WeightReaction: 1.0,
	ScaleFactor:    100.0,
}

// CalculateScore ranks a post of the given age: log-smoothed weighted engagement
// divided by (hours + 2)^gravity.
func CalculateScore(age time.Duration, reactions, comments int) float64 {
	hours := age.Hours()
	if hours < 0 {
		hours = 0
	}

	weightedSum := float64(reactions)*DefaultConfig.WeightReaction +
		float64(comments)*DefaultConfig.WeightComment
	if weightedSum < 0 {
		weightedSum = 0
	}

	numerator := math.Log10(weightedSum+1) * DefaultConfig.ScaleFactor
	decay := math.Pow(hours+2, DefaultConfig.Gravity)
	return numerator / decay
}
