package field

import (
	"cmp"
	"math"
	"slices"
)

// GridCutoff is the point count above which Connect buckets points into a
// uniform grid instead of testing every pair.
const GridCutoff = 256

// Connect appends to dst every pair of stars closer than threshold (strictly)
// and returns the extended slice. Pairs are ordered by (I, J).
func Connect(stars []Star, threshold float64, dst []Link) []Link {
	if threshold <= 0 || len(stars) < 2 {
		return dst
	}
	if len(stars) > GridCutoff {
		return connectGrid(stars, threshold, dst)
	}
	return connectPairs(stars, threshold, dst)
}

func connectPairs(stars []Star, threshold float64, dst []Link) []Link {
	for i := 0; i < len(stars); i++ {
		for j := i + 1; j < len(stars); j++ {
			if d := distance(stars[i].Point, stars[j].Point); d < threshold {
				dst = append(dst, Link{I: i, J: j, Distance: d})
			}
		}
	}
	return dst
}

type cell struct{ col, row int }

// connectGrid buckets stars into threshold-sized cells so each star is only
// compared with the stars of its own and the eight neighbouring cells.
func connectGrid(stars []Star, threshold float64, dst []Link) []Link {
	buckets := make(map[cell][]int, len(stars))
	for i, s := range stars {
		k := cellOf(s.Point, threshold)
		buckets[k] = append(buckets[k], i)
	}

	start := len(dst)
	for i, s := range stars {
		k := cellOf(s.Point, threshold)
		for dc := -1; dc <= 1; dc++ {
			for dr := -1; dr <= 1; dr++ {
				for _, j := range buckets[cell{k.col + dc, k.row + dr}] {
					if j <= i {
						continue
					}
					if d := distance(s.Point, stars[j].Point); d < threshold {
						dst = append(dst, Link{I: i, J: j, Distance: d})
					}
				}
			}
		}
	}

	slices.SortFunc(dst[start:], func(a, b Link) int {
		if c := cmp.Compare(a.I, b.I); c != 0 {
			return c
		}
		return cmp.Compare(a.J, b.J)
	})
	return dst
}

func cellOf(p Point, size float64) cell {
	return cell{int(math.Floor(p.X / size)), int(math.Floor(p.Y / size))}
}
