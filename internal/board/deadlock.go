package board

// Target is the sum a selection must reach to clear.
const Target = 10

// prefixSums builds P where P[r][c] is the sum of all values above and left of (r,c), exclusive.
func (b *Board) prefixSums() [][]int {
	p := make([][]int, b.Rows+1)
	for r := range p {
		p[r] = make([]int, b.Cols+1)
	}
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			v := b.ValueAt(Pos{Row: r, Col: c})
			p[r+1][c+1] = v + p[r][c+1] + p[r+1][c] - p[r][c]
		}
	}
	return p
}

func areaSum(p [][]int, rect Rect) int {
	return p[rect.R2+1][rect.C2+1] - p[rect.R1][rect.C2+1] - p[rect.R2+1][rect.C1] + p[rect.R1][rect.C1]
}

// SumRect returns the sum of occupied values inside rect.
func (b *Board) SumRect(rect Rect) int {
	return areaSum(b.prefixSums(), rect)
}

// HasAnyTenSumRectangle reports whether some sub-rectangle, with empty cells counting as 0,
// sums to exactly Target.
func (b *Board) HasAnyTenSumRectangle() bool {
	p := b.prefixSums()
	for r1 := 0; r1 < b.Rows; r1++ {
		for r2 := r1; r2 < b.Rows; r2++ {
			for c1 := 0; c1 < b.Cols; c1++ {
				for c2 := c1; c2 < b.Cols; c2++ {
					s := areaSum(p, Rect{R1: r1, R2: r2, C1: c1, C2: c2})
					if s == Target {
						return true
					}
					// widening only adds non-negative values
					if s > Target {
						break
					}
				}
			}
		}
	}
	return false
}
