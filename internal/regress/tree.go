package regress

import (
	"math"
	"math/rand"
	"sort"
)

// treeConfig controls regression tree growth. lambda shrinks leaf values
// toward zero (used by the regularized boosting variant), minGain prunes
// splits whose variance reduction is below the threshold.
type treeConfig struct {
	maxDepth    int
	minSplit    int
	maxFeatures int // 0 means all features
	lambda      float64
	minGain     float64
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

// buildTree grows a variance-reduction regression tree over the rows in idx.
// Split gains are accumulated into imp, indexed by feature.
func buildTree(X [][]float64, y []float64, idx []int, cfg treeConfig, rng *rand.Rand, depth int, imp []float64) *treeNode {
	node := &treeNode{leaf: true, value: leafValue(y, idx, cfg.lambda)}
	if depth >= cfg.maxDepth || len(idx) < cfg.minSplit {
		return node
	}

	d := len(X[0])
	feats := featureSample(d, cfg.maxFeatures, rng)

	parentSSE := sse(y, idx)
	bestGain := cfg.minGain
	bestFeat, bestThresh := -1, 0.0

	order := make([]int, len(idx))
	for _, f := range feats {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

		// prefix scan: left side takes order[:i+1]
		var lSum, lSq float64
		rSum, rSq := sums(y, order)
		n := float64(len(order))
		for i := 0; i < len(order)-1; i++ {
			v := y[order[i]]
			lSum += v
			lSq += v * v
			rSum -= v
			rSq -= v * v
			// cannot split between equal feature values
			if X[order[i]][f] == X[order[i+1]][f] {
				continue
			}
			ln := float64(i + 1)
			rn := n - ln
			gain := parentSSE - (lSq - lSum*lSum/ln) - (rSq - rSum*rSum/rn)
			if gain > bestGain {
				bestGain = gain
				bestFeat = f
				bestThresh = (X[order[i]][f] + X[order[i+1]][f]) / 2
			}
		}
	}

	if bestFeat < 0 {
		return node
	}
	var lIdx, rIdx []int
	for _, i := range idx {
		if X[i][bestFeat] <= bestThresh {
			lIdx = append(lIdx, i)
		} else {
			rIdx = append(rIdx, i)
		}
	}
	if len(lIdx) == 0 || len(rIdx) == 0 {
		return node
	}
	if imp != nil {
		imp[bestFeat] += bestGain
	}
	node.leaf = false
	node.feature = bestFeat
	node.threshold = bestThresh
	node.left = buildTree(X, y, lIdx, cfg, rng, depth+1, imp)
	node.right = buildTree(X, y, rIdx, cfg, rng, depth+1, imp)
	return node
}

func (t *treeNode) predict(row []float64) float64 {
	for !t.leaf {
		if row[t.feature] <= t.threshold {
			t = t.left
		} else {
			t = t.right
		}
	}
	return t.value
}

func leafValue(y []float64, idx []int, lambda float64) float64 {
	if len(idx) == 0 {
		return 0
	}
	var s float64
	for _, i := range idx {
		s += y[i]
	}
	return s / (float64(len(idx)) + lambda)
}

func sums(y []float64, idx []int) (sum, sq float64) {
	for _, i := range idx {
		v := y[i]
		sum += v
		sq += v * v
	}
	return sum, sq
}

func sse(y []float64, idx []int) float64 {
	sum, sq := sums(y, idx)
	n := float64(len(idx))
	if n == 0 {
		return 0
	}
	return sq - sum*sum/n
}

// featureSample picks k distinct feature indices, or all of them when k is
// zero or covers the whole set.
func featureSample(d, k int, rng *rand.Rand) []int {
	if k <= 0 || k >= d {
		out := make([]int, d)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return rng.Perm(d)[:k]
}

// normalizeImportances scales scores so they sum to one. All-zero scores are
// left untouched.
func normalizeImportances(imp []float64) {
	var total float64
	for _, v := range imp {
		total += v
	}
	if total == 0 || math.IsNaN(total) {
		return
	}
	for i := range imp {
		imp[i] /= total
	}
}
