package metrics

// assignmentMin solves the minimum-cost perfect assignment on a square
// cost matrix with the Hungarian algorithm (potentials formulation,
// O(n^3)). Used when the speaker count makes exhaustive permutation search
// infeasible; both paths minimize the same objective.
func assignmentMin(cost [][]int) int {
	n := len(cost)
	const inf = int(^uint(0) >> 2)

	u := make([]int, n+1)
	v := make([]int, n+1)
	match := make([]int, n+1) // match[j] = row assigned to column j, 1-based
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		match[0] = i
		j0 := 0
		minv := make([]int, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = inf
		}
		for {
			used[j0] = true
			i0 := match[j0]
			delta := inf
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if match[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}

	total := 0
	for j := 1; j <= n; j++ {
		if match[j] != 0 {
			total += cost[match[j]-1][j-1]
		}
	}
	return total
}
