package ai

import "math"

// NormalizeVector normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector
// rather than producing NaN or Inf components.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	// Calculate magnitude
	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	// Can't normalize zero vector
	if magnitude == 0 {
		result := make([]float32, len(v))
		return result
	}

	// Normalize
	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// NormalizeVectors normalizes each row of a batch to unit length.
// Rows are normalized independently; zero rows stay zero.
func NormalizeVectors(vectors [][]float32) [][]float32 {
	result := make([][]float32, len(vectors))
	for i, v := range vectors {
		result[i] = NormalizeVector(v)
	}
	return result
}
