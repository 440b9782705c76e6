package sentiment

import (
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the label distribution of a set of results.
type Stats struct {
	Total            int               `json:"total"`
	Counts           map[Label]int     `json:"counts"`
	Percentages      map[Label]float64 `json:"percentages"`
	MeanConfidence   float64           `json:"mean_confidence"`
	StdDevConfidence float64           `json:"stddev_confidence"`
	MeanByLabel      map[Label]float64 `json:"mean_confidence_by_label"`
}

// ComputeStats counts labels and their share of the total. Only labels
// that occur appear in the maps.
func ComputeStats(results []Result) Stats {
	s := Stats{
		Total:       len(results),
		Counts:      make(map[Label]int),
		Percentages: make(map[Label]float64),
		MeanByLabel: make(map[Label]float64),
	}
	if len(results) == 0 {
		return s
	}

	all := make([]float64, len(results))
	byLabel := make(map[Label][]float64)
	for i, r := range results {
		s.Counts[r.Sentiment]++
		all[i] = r.Confidence
		byLabel[r.Sentiment] = append(byLabel[r.Sentiment], r.Confidence)
	}

	for label, n := range s.Counts {
		s.Percentages[label] = float64(n) / float64(s.Total) * 100
	}
	for label, xs := range byLabel {
		s.MeanByLabel[label] = stat.Mean(xs, nil)
	}

	s.MeanConfidence = stat.Mean(all, nil)
	// Sample standard deviation is undefined for a single observation.
	if len(all) > 1 {
		s.StdDevConfidence = stat.StdDev(all, nil)
	}
	return s
}
