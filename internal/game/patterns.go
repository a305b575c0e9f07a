package game

// GenerateWinPatterns lists the winning index sequences of a rows x cols
// board in row-major order: every row top to bottom, every column left to
// right, then for square boards the main diagonal and the anti-diagonal.
func GenerateWinPatterns(rows, cols int) [][]int {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	patterns := make([][]int, 0, rows+cols+2)

	for r := 0; r < rows; r++ {
		row := make([]int, 0, cols)
		for c := 0; c < cols; c++ {
			row = append(row, r*cols+c)
		}
		patterns = append(patterns, row)
	}

	for c := 0; c < cols; c++ {
		col := make([]int, 0, rows)
		for r := 0; r < rows; r++ {
			col = append(col, r*cols+c)
		}
		patterns = append(patterns, col)
	}

	if rows == cols {
		diag := make([]int, 0, rows)
		anti := make([]int, 0, rows)
		for i := 0; i < rows; i++ {
			diag = append(diag, i*cols+i)
			anti = append(anti, i*cols+(cols-1-i))
		}
		patterns = append(patterns, diag, anti)
	}

	return patterns
}

// findWinningPattern returns the first pattern whose every position holds a
// card in marked.
func findWinningPattern(board []string, marked map[string]struct{}, patterns [][]int) ([]int, bool) {
	for _, pattern := range patterns {
		if coversPattern(board, marked, pattern) {
			return pattern, true
		}
	}
	return nil, false
}

func coversPattern(board []string, marked map[string]struct{}, pattern []int) bool {
	if len(pattern) == 0 {
		return false
	}
	for _, idx := range pattern {
		if idx < 0 || idx >= len(board) {
			return false
		}
		if _, ok := marked[board[idx]]; !ok {
			return false
		}
	}
	return true
}

func cardsAt(board []string, pattern []int) []string {
	cards := make([]string, 0, len(pattern))
	for _, idx := range pattern {
		cards = append(cards, board[idx])
	}
	return cards
}
