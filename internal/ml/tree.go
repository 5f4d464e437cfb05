package ml

import (
	"errors"
	"math/rand"
	"sort"
)

// TreeNode is one node of a fitted decision tree. Exported for gob encoding.
type TreeNode struct {
	Leaf      bool
	Feature   int
	Threshold float64 // x <= threshold goes left
	Left      *TreeNode
	Right     *TreeNode
	Proba     float64 // class-weighted fraud probability at a leaf
}

// DecisionTree is a binary CART classifier using weighted gini impurity.
type DecisionTree struct {
	MaxDepth        int // 0 => no limit
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int // 0 => all features, >0 => sample that many per split
	Seed            int64
	ClassWeight     [2]float64
	Root            *TreeNode
}

// TreeOption configures a DecisionTree.
type TreeOption func(*DecisionTree)

func WithMaxDepth(d int) TreeOption        { return func(t *DecisionTree) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) TreeOption { return func(t *DecisionTree) { t.MinSamplesSplit = n } }
func WithMinSamplesLeaf(n int) TreeOption  { return func(t *DecisionTree) { t.MinSamplesLeaf = n } }
func WithMaxFeatures(k int) TreeOption     { return func(t *DecisionTree) { t.MaxFeatures = k } }
func WithTreeSeed(seed int64) TreeOption   { return func(t *DecisionTree) { t.Seed = seed } }
func WithClassWeight(w [2]float64) TreeOption {
	return func(t *DecisionTree) { t.ClassWeight = w }
}

// NewDecisionTree returns a classifier with defaults matching a fully grown
// unweighted tree.
func NewDecisionTree(opts ...TreeOption) *DecisionTree {
	t := &DecisionTree{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		ClassWeight:     [2]float64{1, 1},
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Fit trains the tree on X (n x p) and binary labels y.
func (t *DecisionTree) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("dtree: empty X")
	}
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	return t.FitIndices(X, y, idx)
}

// FitIndices trains the tree on the given sample indices, so bootstrap
// samples can share the backing matrix.
func (t *DecisionTree) FitIndices(X [][]float64, y []int, idx []int) error {
	if len(idx) == 0 {
		return errors.New("dtree: empty sample")
	}
	if len(y) != len(X) {
		return errors.New("dtree: X and y length mismatch")
	}
	rnd := rand.New(rand.NewSource(t.Seed))
	t.Root = t.buildNode(X, y, idx, 0, rnd)
	return nil
}

// PredictProba returns the fraud probability for a single feature row.
func (t *DecisionTree) PredictProba(x []float64) float64 {
	node := t.Root
	for node != nil && !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	if node == nil {
		return 0.5
	}
	return node.Proba
}

// Predict returns class labels based on a 0.5 probability threshold.
func (t *DecisionTree) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, row := range X {
		if t.PredictProba(row) >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

// weightedCounts sums class weights over the sample indices.
func (t *DecisionTree) weightedCounts(y []int, idx []int) (w0, w1 float64) {
	for _, i := range idx {
		if y[i] == 1 {
			w1 += t.ClassWeight[1]
		} else {
			w0 += t.ClassWeight[0]
		}
	}
	return
}

func gini(w0, w1 float64) float64 {
	n := w0 + w1
	if n == 0 {
		return 0
	}
	p0 := w0 / n
	p1 := w1 / n
	return 1 - p0*p0 - p1*p1
}

func (t *DecisionTree) leaf(w0, w1 float64) *TreeNode {
	proba := 0.0
	if w0+w1 > 0 {
		proba = w1 / (w0 + w1)
	}
	return &TreeNode{Leaf: true, Proba: proba}
}

type valueIndex struct {
	v float64
	i int
}

func (t *DecisionTree) buildNode(X [][]float64, y []int, idx []int, depth int, rnd *rand.Rand) *TreeNode {
	w0, w1 := t.weightedCounts(y, idx)

	if w0 == 0 || w1 == 0 || len(idx) < t.MinSamplesSplit {
		return t.leaf(w0, w1)
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return t.leaf(w0, w1)
	}

	p := len(X[0])
	features := make([]int, p)
	for j := 0; j < p; j++ {
		features[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(i, j int) { features[i], features[j] = features[j], features[i] })
		features = features[:t.MaxFeatures]
	}

	parent := gini(w0, w1)
	total := w0 + w1
	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0
	var bestLeft, bestRight []int

	pairs := make([]valueIndex, len(idx))
	for _, f := range features {
		for k, i := range idx {
			pairs[k] = valueIndex{X[i][f], i}
		}
		sort.Slice(pairs, func(a, b int) bool { return pairs[a].v < pairs[b].v })

		// Scan thresholds between distinct adjacent values, tracking the
		// weighted class mass moving to the left partition.
		l0, l1 := 0.0, 0.0
		for s := 1; s < len(pairs); s++ {
			i := pairs[s-1].i
			if y[i] == 1 {
				l1 += t.ClassWeight[1]
			} else {
				l0 += t.ClassWeight[0]
			}
			if pairs[s].v == pairs[s-1].v {
				continue
			}
			if s < t.MinSamplesLeaf || len(pairs)-s < t.MinSamplesLeaf {
				continue
			}
			r0, r1 := w0-l0, w1-l1
			weighted := (l0+l1)/total*gini(l0, l1) + (r0+r1)/total*gini(r0, r1)
			gain := parent - weighted
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (pairs[s-1].v + pairs[s].v) / 2.0
				left := make([]int, s)
				right := make([]int, len(pairs)-s)
				for k := 0; k < s; k++ {
					left[k] = pairs[k].i
				}
				for k := s; k < len(pairs); k++ {
					right[k-s] = pairs[k].i
				}
				bestLeft, bestRight = left, right
			}
		}
	}

	if bestFeature < 0 {
		return t.leaf(w0, w1)
	}

	return &TreeNode{
		Feature:   bestFeature,
		Threshold: bestThreshold,
		Left:      t.buildNode(X, y, bestLeft, depth+1, rnd),
		Right:     t.buildNode(X, y, bestRight, depth+1, rnd),
	}
}
