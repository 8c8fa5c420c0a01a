package objective

import "math"

// CalculateProgress derives the completion percentage of a key result from
// its initiatives' task-completion ratios. With no initiatives the key
// result is in manual mode and the author-supplied progress passes through.
// An initiative without tasks counts as 0% but stays in the denominator.
func CalculateProgress(kr *KeyResultForm) int {
	if len(kr.Initiatives) == 0 {
		return clampProgress(kr.Progress)
	}

	var sum float64
	for _, init := range kr.Initiatives {
		total := len(init.Tasks)
		if total == 0 {
			continue
		}
		completed := 0
		for _, t := range init.Tasks {
			if t.Completed {
				completed++
			}
		}
		sum += float64(completed) / float64(total)
	}

	return int(math.Round(sum / float64(len(kr.Initiatives)) * 100))
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
