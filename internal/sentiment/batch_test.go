package sentiment

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBatch_PreservesOrder(t *testing.T) {
	c := NewClassifier(nil)

	texts := make([]string, 200)
	for i := range texts {
		switch i % 3 {
		case 0:
			texts[i] = fmt.Sprintf("notícia %d excelente", i)
		case 1:
			texts[i] = fmt.Sprintf("notícia %d com problema grave", i)
		default:
			texts[i] = fmt.Sprintf("notícia %d sobre o sistema", i)
		}
	}

	items, err := c.ClassifyBatch(context.Background(), texts, 8)
	require.NoError(t, err)
	require.Len(t, items, len(texts))

	for i, it := range items {
		assert.Equal(t, i, it.Index)
		assert.Equal(t, texts[i], it.Text)
		assert.Equal(t, c.Classify(texts[i]), it.Result)
	}
}

func TestClassifyBatch_Empty(t *testing.T) {
	items, err := NewClassifier(nil).ClassifyBatch(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClassifyBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClassifier(nil).ClassifyBatch(ctx, []string{"bom", "ruim"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComputeStats(t *testing.T) {
	results := []Result{
		{Sentiment: Positive, Confidence: 0.5},
		{Sentiment: Positive, Confidence: 0.7},
		{Sentiment: Negative, Confidence: 0.3},
	}

	s := ComputeStats(results)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, map[Label]int{Positive: 2, Negative: 1}, s.Counts)
	assert.NotContains(t, s.Percentages, Neutral)
	assert.InDelta(t, 66.6667, s.Percentages[Positive], 1e-3)
	assert.InDelta(t, 33.3333, s.Percentages[Negative], 1e-3)
	assert.InDelta(t, 0.5, s.MeanConfidence, 1e-9)
	assert.InDelta(t, 0.2, s.StdDevConfidence, 1e-9)
	assert.InDelta(t, 0.6, s.MeanByLabel[Positive], 1e-9)
}

func TestComputeStats_EdgeCases(t *testing.T) {
	empty := ComputeStats(nil)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.Counts)
	assert.Empty(t, empty.Percentages)

	single := ComputeStats([]Result{{Sentiment: Neutral, Confidence: 0.1}})
	assert.Equal(t, 100.0, single.Percentages[Neutral])
	assert.Zero(t, single.StdDevConfidence)
}

func TestResults(t *testing.T) {
	items, err := NewClassifier(nil).ClassifyBatch(context.Background(), []string{"excelente", ""}, 2)
	require.NoError(t, err)

	res := Results(items)
	require.Len(t, res, 2)
	assert.Equal(t, Positive, res[0].Sentiment)
	assert.Equal(t, Neutral, res[1].Sentiment)
}
