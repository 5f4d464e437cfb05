package dataset

import "math/rand"

// StratifiedSplit splits X, y into train and test sets, preserving the label
// distribution in both. The seeded generator makes the split reproducible.
func StratifiedSplit(X [][]float64, y []int, testRatio float64, seed int64) (XTrain, XTest [][]float64, yTrain, yTest []int) {
	rnd := rand.New(rand.NewSource(seed))

	byClass := map[int][]int{}
	classes := []int{}
	for i, label := range y {
		if _, ok := byClass[label]; !ok {
			classes = append(classes, label)
		}
		byClass[label] = append(byClass[label], i)
	}

	for _, label := range classes {
		idx := byClass[label]
		rnd.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		nTest := int(float64(len(idx)) * testRatio)
		for k, i := range idx {
			if k < nTest {
				XTest = append(XTest, X[i])
				yTest = append(yTest, y[i])
			} else {
				XTrain = append(XTrain, X[i])
				yTrain = append(yTrain, y[i])
			}
		}
	}
	return
}
