package stats

import (
	"math"
)

// PearsonCorrelation calculates the Pearson correlation coefficient between two variables
// Returns value between -1 and 1
func PearsonCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var sumXY, sumX2, sumY2 float64
	for i := 0; i < len(x); i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sumXY += dx * dy
		sumX2 += dx * dx
		sumY2 += dy * dy
	}

	if sumX2 == 0 || sumY2 == 0 {
		return 0
	}

	return sumXY / math.Sqrt(sumX2*sumY2)
}

// CorrelationMatrix calculates the pairwise Pearson correlation matrix for a
// set of equally sized variable columns. The diagonal is always 1.
func CorrelationMatrix(columns [][]float64) [][]float64 {
	n := len(columns)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := PearsonCorrelation(columns[i], columns[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return matrix
}

// Covariance calculates the sample covariance between two variables
func Covariance(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}

	n := float64(len(x))
	meanX := Mean(x)
	meanY := Mean(y)

	var sumXY float64
	for i := 0; i < len(x); i++ {
		sumXY += (x[i] - meanX) * (y[i] - meanY)
	}

	return sumXY / (n - 1)
}
