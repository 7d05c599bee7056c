package graph

type intHasher struct{}

func (intHasher) Hash(i int) uint32 { return uint32(i) * 2654435761 }
func (intHasher) Equal(a, b int) bool { return a == b }

var succs = map[int][]int{
	0: {1, 2},
	1: {3},
	2: {3, 4},
	3: {5},
	4: {5},
	5: {1},
	6: {0},
}

var preds = func() map[int][]int {
	rev := map[int][]int{}
	for from, tos := range succs {
		for _, to := range tos {
			rev[to] = append(rev[to], from)
		}
	}
	return rev
}()

var _sampleGraph = Of[int](intHasher{},
	func(i int) []int { return succs[i] },
	func(i int) []int { return preds[i] })
