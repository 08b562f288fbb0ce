package dialect

// Classification is the result of scoring evidence for a file.
type Classification struct {
	Kind            Kind
	Score           int
	TotalScore      int
	Confidence      float64
	RunnerUp        Kind
	RunnerUpScore   int
	ObservedSignals int
}

// Classifier scores evidence and picks the dominant dialect. Thresholds are
// left to the caller.
type Classifier struct{}

func (Classifier) Classify(e *Evidence) Classification {
	hints := e.Hints()
	if len(hints) == 0 {
		return Classification{Kind: Unknown}
	}

	var scores [kindCount]int
	total := 0
	for _, h := range hints {
		if h.Score <= 0 || h.Dialect <= Unknown || h.Dialect >= kindCount {
			continue
		}
		scores[h.Dialect] += h.Score
		total += h.Score
	}

	bestKind, bestScore := Unknown, 0
	runnerKind, runnerScore := Unknown, 0
	for k := TypeScript; k < kindCount; k++ {
		score := scores[k]
		if score > bestScore {
			runnerKind, runnerScore = bestKind, bestScore
			bestKind, bestScore = k, score
			continue
		}
		if score > runnerScore {
			runnerKind, runnerScore = k, score
		}
	}

	conf := 0.0
	if total > 0 {
		conf = float64(bestScore) / float64(total)
	}
	return Classification{
		Kind:            bestKind,
		Score:           bestScore,
		TotalScore:      total,
		Confidence:      conf,
		RunnerUp:        runnerKind,
		RunnerUpScore:   runnerScore,
		ObservedSignals: len(hints),
	}
}

// Confident reports whether c is strong enough to mention to a user.
func (c Classification) Confident() bool {
	return c.Kind != Unknown && c.Score >= 4 && c.Confidence >= 0.6
}
