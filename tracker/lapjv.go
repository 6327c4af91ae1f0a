package tracker

import (
	"errors"
	"fmt"
)

// large acts as infinity for the assignment solver.  All real pair
// costs must be well below it.
const large = 1000000.0

// solveAssignment solves the rectangular minimum cost assignment
// problem for the given cost matrix (rows = tracked points, columns =
// candidates) using the Jonker-Volgenant algorithm.  Pairs whose cost
// is costLimit or more are left unassigned rather than forced.  It
// returns rowTo (column assigned to each row, -1 when unassigned) and
// colTo (row assigned to each column, -1 when unassigned).
//
// The rectangular problem is reduced to a square one of size
// rows+cols, padded so that leaving any row or column unmatched costs
// exactly costLimit, which makes a real pairing win exactly when its
// cost is below costLimit.
func solveAssignment(cost [][]float64, costLimit float64) (rowTo, colTo []int, err error) {

	nRows := len(cost)

	if nRows == 0 {
		return nil, nil, nil
	}

	nCols := len(cost[0])

	if nCols == 0 {
		rowTo = make([]int, nRows)
		for i := range rowTo {
			rowTo[i] = -1
		}
		return rowTo, nil, nil
	}

	n := nRows + nCols

	padded := make([][]float64, n)

	for i := range padded {
		padded[i] = make([]float64, n)

		for j := range padded[i] {
			padded[i][j] = costLimit / 2.0
		}
	}

	// dummy-to-dummy block is free
	for i := nRows; i < n; i++ {
		for j := nCols; j < n; j++ {
			padded[i][j] = 0
		}
	}

	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			padded[i][j] = cost[i][j]
		}
	}

	x := make([]int, n)
	y := make([]int, n)

	if err := lapjvDense(n, padded, x, y); err != nil {
		return nil, nil, fmt.Errorf("assignment solve failed: %w", err)
	}

	rowTo = make([]int, nRows)
	colTo = make([]int, nCols)

	for i := 0; i < nRows; i++ {
		if x[i] < nCols {
			rowTo[i] = x[i]
		} else {
			rowTo[i] = -1
		}
	}

	for j := 0; j < nCols; j++ {
		if y[j] < nRows {
			colTo[j] = y[j]
		} else {
			colTo[j] = -1
		}
	}

	return rowTo, colTo, nil
}

// lapjvDense solves the square dense linear assignment problem.  On
// return x[i] holds the column assigned to row i and y[j] the row
// assigned to column j.
func lapjvDense(n int, cost [][]float64, x, y []int) error {

	freeRows := make([]int, n)
	v := make([]float64, n)

	nFree := columnReduction(n, cost, freeRows, x, y, v)

	for i := 0; nFree > 0 && i < 2; i++ {
		nFree = augmentingRowReduction(n, cost, nFree, freeRows, x, y, v)
	}

	if nFree > 0 {
		return augmentation(n, cost, nFree, freeRows, x, y, v)
	}

	return nil
}

// columnReduction performs column reduction and reduction transfer,
// returning the number of unassigned rows
func columnReduction(n int, cost [][]float64, freeRows, x, y []int, v []float64) int {

	unique := make([]bool, n)

	for i := 0; i < n; i++ {
		x[i] = -1
		v[i] = large
		y[i] = 0
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if c := cost[i][j]; c < v[j] {
				v[j] = c
				y[j] = i
			}
		}
	}

	for i := 0; i < n; i++ {
		unique[i] = true
	}

	for j := n - 1; j >= 0; j-- {
		i := y[j]

		if x[i] < 0 {
			x[i] = j
		} else {
			unique[i] = false
			y[j] = -1
		}
	}

	nFree := 0

	for i := 0; i < n; i++ {

		if x[i] < 0 {
			freeRows[nFree] = i
			nFree++
			continue
		}

		if !unique[i] {
			continue
		}

		j := x[i]
		minVal := large

		for j2 := 0; j2 < n; j2++ {
			if j2 == j {
				continue
			}

			if c := cost[i][j2] - v[j2]; c < minVal {
				minVal = c
			}
		}

		v[j] -= minVal
	}

	return nFree
}

// augmentingRowReduction performs one pass of augmenting row reduction
// over the currently free rows, returning the number still free
func augmentingRowReduction(n int, cost [][]float64, nFree int, freeRows,
	x, y []int, v []float64) int {

	current := 0
	newFree := 0
	rrCnt := 0

	for current < nFree {

		rrCnt++
		freeI := freeRows[current]
		current++

		// find the two smallest reduced costs in the row
		j1 := 0
		v1 := cost[freeI][0] - v[0]
		j2 := -1
		v2 := large

		for j := 1; j < n; j++ {
			c := cost[freeI][j] - v[j]

			if c < v2 {
				if c >= v1 {
					v2 = c
					j2 = j
				} else {
					v2 = v1
					v1 = c
					j2 = j1
					j1 = j
				}
			}
		}

		i0 := y[j1]
		v1New := v[j1] - (v2 - v1)
		v1Lowers := v1New < v[j1]

		if rrCnt < current*n {
			if v1Lowers {
				v[j1] = v1New
			} else if i0 >= 0 && j2 >= 0 {
				j1 = j2
				i0 = y[j2]
			}

			if i0 >= 0 {
				if v1Lowers {
					current--
					freeRows[current] = i0
				} else {
					freeRows[newFree] = i0
					newFree++
				}
			}
		} else if i0 >= 0 {
			freeRows[newFree] = i0
			newFree++
		}

		x[freeI] = j1
		y[j1] = freeI
	}

	return newFree
}

// findMinCols moves the columns with minimum d onto the SCAN section of
// cols and returns the new hi bound
func findMinCols(n, lo int, d []float64, cols []int) int {

	hi := lo + 1
	mind := d[cols[lo]]

	for k := hi; k < n; k++ {

		j := cols[k]

		if d[j] <= mind {
			if d[j] < mind {
				hi = lo
				mind = d[j]
			}

			cols[k] = cols[hi]
			cols[hi] = j
			hi++
		}
	}

	return hi
}

// scanReady relaxes the TODO columns using the columns on the SCAN
// list, returning an unassigned minimal column when one is found
func scanReady(n int, cost [][]float64, lo, hi *int, d []float64,
	cols, pred, y []int, v []float64) int {

	for *lo != *hi {

		j := cols[*lo]
		*lo++
		i := y[j]
		mind := d[j]
		h := cost[i][j] - v[j] - mind

		for k := *hi; k < n; k++ {
			j = cols[k]
			cred := cost[i][j] - v[j] - h

			if cred < d[j] {
				d[j] = cred
				pred[j] = i

				if cred == mind {
					if y[j] < 0 {
						return j
					}

					cols[k] = cols[*hi]
					cols[*hi] = j
					(*hi)++
				}
			}
		}
	}

	return -1
}

// shortestPath runs one iteration of the modified Dijkstra shortest
// augmenting path search from startI, as described in the JV paper
func shortestPath(n int, cost [][]float64, startI int, y []int, v []float64,
	pred []int) int {

	lo := 0
	hi := 0
	finalJ := -1
	nReady := 0
	cols := make([]int, n)
	d := make([]float64, n)

	for i := 0; i < n; i++ {
		cols[i] = i
		pred[i] = startI
		d[i] = cost[startI][i] - v[i]
	}

	for finalJ == -1 {

		// no columns left on the SCAN list
		if lo == hi {
			nReady = lo
			hi = findMinCols(n, lo, d, cols)

			for k := lo; k < hi; k++ {
				if j := cols[k]; y[j] < 0 {
					finalJ = j
				}
			}
		}

		if finalJ == -1 {
			finalJ = scanReady(n, cost, &lo, &hi, d, cols, pred, y, v)
		}
	}

	mind := d[cols[lo]]

	for k := 0; k < nReady; k++ {
		j := cols[k]
		v[j] += d[j] - mind
	}

	return finalJ
}

// augmentation augments the solution for each remaining free row
func augmentation(n int, cost [][]float64, nFree int, freeRows,
	x, y []int, v []float64) error {

	pred := make([]int, n)

	for _, freeI := range freeRows[:nFree] {

		i := -1
		k := 0

		j := shortestPath(n, cost, freeI, y, v, pred)

		if j < 0 || j >= n {
			return errors.New("augmentation found no valid column")
		}

		for i != freeI {

			i = pred[j]
			y[j] = i
			j, x[i] = x[i], j
			k++

			if k >= n {
				return errors.New("augmentation cycle exceeded matrix size")
			}
		}
	}

	return nil
}
