package queens

// Conflicts counts attacking pairs by direct comparison, O(n²).
// Two queens attack when they share a row or a diagonal.
func Conflicts(rows []int) int {
	c := 0
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			dr := rows[i] - rows[j]
			if dr < 0 {
				dr = -dr
			}
			if dr == 0 || dr == j-i {
				c++
			}
		}
	}
	return c
}
