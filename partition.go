package depthraster

import "fmt"

// Bucket holds the shapes sharing one depth, in input order.
// Input order is the blend order inside the bucket: shapes at the same
// depth have no front-to-back relation, so a caller that needs one must
// sort by a secondary key before partitioning.
type Bucket struct {
	Depth  int
	Shapes []Shape
}

// Partition groups shapes by depth. The result has maxDepth+1 buckets and
// buckets[d].Depth == d; empty buckets are allowed. Every shape lands in
// exactly one bucket and relative order within a bucket is preserved.
//
// A shape failing validation or with a depth outside [0, maxDepth] aborts
// the partition with a *ShapeError naming its index.
func Partition(shapes []Shape, maxDepth int) ([]Bucket, error) {
	if maxDepth < 0 {
		return nil, fmt.Errorf("%w: maxDepth %d is negative", ErrInvalidDepth, maxDepth)
	}

	if err := validateShapes(shapes, maxDepth); err != nil {
		return nil, err
	}

	counts := make([]int, maxDepth+1)
	for _, s := range shapes {
		counts[s.depth]++
	}

	// One backing array for all buckets; each bucket gets a capped window.
	backing := make([]Shape, len(shapes))
	buckets := make([]Bucket, maxDepth+1)
	off := 0
	for d, n := range counts {
		buckets[d] = Bucket{Depth: d, Shapes: backing[off : off : off+n]}
		off += n
	}

	for _, s := range shapes {
		b := &buckets[s.depth]
		b.Shapes = append(b.Shapes, s)
	}
	return buckets, nil
}

// validateShapes checks every shape against the depth domain [0, maxDepth].
func validateShapes(shapes []Shape, maxDepth int) error {
	for i, s := range shapes {
		if err := s.validate(); err != nil {
			return &ShapeError{Index: i, Err: err}
		}
		if s.depth > maxDepth {
			return &ShapeError{
				Index: i,
				Err:   fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidDepth, s.depth, maxDepth),
			}
		}
	}
	return nil
}

// ShapeCount returns the total number of shapes across buckets.
func ShapeCount(buckets []Bucket) int {
	n := 0
	for _, b := range buckets {
		n += len(b.Shapes)
	}
	return n
}
