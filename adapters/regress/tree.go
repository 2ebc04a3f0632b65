package regress

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// TreeNode is one node of a CART regression tree. Fields are exported for
// gob persistence of trained ensembles.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Value     float64
	Leaf      bool
}

// Predict walks the tree for one feature vector
func (n *TreeNode) Predict(features []float64) float64 {
	node := n
	for !node.Leaf {
		if features[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// treeParams controls a single tree fit
type treeParams struct {
	maxDepth        int // 0 means unlimited
	minSamplesSplit int
	maxFeatures     int // 0 means all features
	rng             *rand.Rand
}

// buildTree fits a regression tree on the given sample indices using greedy
// variance-reduction splits. Split gains (sum-of-squares reduction) are
// accumulated per feature into importances.
func buildTree(x [][]float64, y []float64, indices []int, depth int, p treeParams, importances []float64) *TreeNode {
	if len(indices) < p.minSamplesSplit || (p.maxDepth > 0 && depth >= p.maxDepth) {
		return leafNode(y, indices)
	}

	feature, threshold, gain, left, right := bestSplit(x, y, indices, p)
	if gain <= 0 || len(left) == 0 || len(right) == 0 {
		return leafNode(y, indices)
	}
	importances[feature] += gain

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      buildTree(x, y, left, depth+1, p, importances),
		Right:     buildTree(x, y, right, depth+1, p, importances),
	}
}

func leafNode(y []float64, indices []int) *TreeNode {
	var sum float64
	for _, i := range indices {
		sum += y[i]
	}
	return &TreeNode{Leaf: true, Value: sum / float64(len(indices))}
}

// bestSplit scans candidate features for the split with the largest
// sum-of-squares reduction. Candidates are sorted once per feature and
// evaluated with prefix sums.
func bestSplit(x [][]float64, y []float64, indices []int, p treeParams) (feature int, threshold float64, gain float64, left, right []int) {
	numFeatures := len(x[0])
	candidates := featureCandidates(numFeatures, p)

	var totalSum, totalSumSq float64
	for _, i := range indices {
		totalSum += y[i]
		totalSumSq += y[i] * y[i]
	}
	n := float64(len(indices))
	parentSSE := totalSumSq - totalSum*totalSum/n

	feature = -1
	sorted := make([]int, len(indices))
	for _, f := range candidates {
		copy(sorted, indices)
		sortByFeature(x, sorted, f)

		var leftSum, leftSumSq float64
		for split := 1; split < len(sorted); split++ {
			prev := sorted[split-1]
			leftSum += y[prev]
			leftSumSq += y[prev] * y[prev]

			cur := x[sorted[split]][f]
			prevVal := x[prev][f]
			if cur == prevVal {
				continue
			}

			ln := float64(split)
			rn := n - ln
			rightSum := totalSum - leftSum
			rightSumSq := totalSumSq - leftSumSq
			childSSE := (leftSumSq - leftSum*leftSum/ln) + (rightSumSq - rightSum*rightSum/rn)

			if g := parentSSE - childSSE; g > gain {
				gain = g
				feature = f
				threshold = (prevVal + cur) / 2
			}
		}
	}

	if feature < 0 {
		return -1, 0, 0, nil, nil
	}
	for _, i := range indices {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return feature, threshold, gain, left, right
}

// featureCandidates picks the features to consider at a split: all of them,
// or a random subset of maxFeatures
func featureCandidates(numFeatures int, p treeParams) []int {
	if p.maxFeatures <= 0 || p.maxFeatures >= numFeatures {
		all := make([]int, numFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	perm := p.rng.Perm(numFeatures)
	return perm[:p.maxFeatures]
}

// sortByFeature sorts sample indices by the value of one feature
func sortByFeature(x [][]float64, indices []int, feature int) {
	keys := make([]float64, len(indices))
	for i, idx := range indices {
		keys[i] = x[idx][feature]
	}
	order := make([]int, len(indices))
	floats.Argsort(keys, order)
	sorted := make([]int, len(indices))
	for i, o := range order {
		sorted[i] = indices[o]
	}
	copy(indices, sorted)
}
