package ml

import (
	"errors"
	"math"
	"math/rand"
	"sync"
)

// RandomForest is an ensemble of bootstrap-sampled decision trees. The fraud
// probability is the mean of the per-tree leaf probabilities.
type RandomForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int // 0 => sqrt(p)
	Bootstrap       bool
	Seed            int64
	Balanced        bool // reweight classes per bootstrap sample
	Trees           []*DecisionTree
}

// ForestOption configures a RandomForest.
type ForestOption func(*RandomForest)

func WithNEstimators(n int) ForestOption     { return func(rf *RandomForest) { rf.NEstimators = n } }
func WithForestMaxDepth(d int) ForestOption  { return func(rf *RandomForest) { rf.MaxDepth = d } }
func WithForestMinSplit(n int) ForestOption  { return func(rf *RandomForest) { rf.MinSamplesSplit = n } }
func WithBootstrap(b bool) ForestOption      { return func(rf *RandomForest) { rf.Bootstrap = b } }
func WithForestSeed(seed int64) ForestOption { return func(rf *RandomForest) { rf.Seed = seed } }
func WithBalancedSubsample(b bool) ForestOption {
	return func(rf *RandomForest) { rf.Balanced = b }
}

// NewRandomForest initializes the forest with defaults.
func NewRandomForest(opts ...ForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators:     100,
		MinSamplesSplit: 2,
		Bootstrap:       true,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains the forest; one goroutine per tree, each with its own seeded
// generator so the fit is reproducible.
func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("randomforest: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("randomforest: X and y length mismatch")
	}

	maxFeatures := rf.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(len(X[0]))))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	rf.Trees = make([]*DecisionTree, rf.NEstimators)
	var wg sync.WaitGroup
	errCh := make(chan error, rf.NEstimators)

	for i := 0; i < rf.NEstimators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			treeRand := rand.New(rand.NewSource(rf.Seed + int64(idx)))

			sample := make([]int, n)
			for j := 0; j < n; j++ {
				if rf.Bootstrap {
					sample[j] = treeRand.Intn(n)
				} else {
					sample[j] = j
				}
			}

			weight := [2]float64{1, 1}
			if rf.Balanced {
				weight = sampleClassWeight(y, sample)
			}

			tree := NewDecisionTree(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMaxFeatures(maxFeatures),
				WithTreeSeed(rf.Seed+int64(idx)),
				WithClassWeight(weight),
			)
			if err := tree.FitIndices(X, y, sample); err != nil {
				errCh <- err
				return
			}
			rf.Trees[idx] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// PredictProba returns the mean fraud probability across all trees.
func (rf *RandomForest) PredictProba(x []float64) float64 {
	if len(rf.Trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, tree := range rf.Trees {
		sum += tree.PredictProba(x)
	}
	return sum / float64(len(rf.Trees))
}

// Predict returns class labels based on a 0.5 probability threshold.
func (rf *RandomForest) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, row := range X {
		if rf.PredictProba(row) >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

// sampleClassWeight computes balanced weights n/(2*n_c) over a bootstrap
// sample, mirroring per-tree class rebalancing.
func sampleClassWeight(y []int, sample []int) [2]float64 {
	counts := [2]int{}
	for _, i := range sample {
		counts[y[i]]++
	}
	n := float64(len(sample))
	w := [2]float64{1, 1}
	for c := 0; c < 2; c++ {
		if counts[c] > 0 {
			w[c] = n / (2 * float64(counts[c]))
		}
	}
	return w
}
