package optimizer

import "math"

// Thresholds samples the geometric grid {(1+epsilon)^i : lower <= (1+epsilon)^i <= upper},
// i ranging over all integers for which the bound holds. Used to seed one
// sieve per threshold in SieveStreaming, SieveStreamingPP and Salsa.
func Thresholds(lower, upper, epsilon float64) ([]float64, error) {
	if epsilon <= 0 {
		return nil, &Error{Op: "Thresholds", Param: "epsilon", Value: epsilon, Err: ErrInvalidThresholdRange}
	}

	var ts []float64
	i := int(math.Ceil(math.Log(lower) / math.Log(1+epsilon)))
	for {
		val := math.Pow(1+epsilon, float64(i))
		if val > upper {
			break
		}
		ts = append(ts, val)
		i++
	}
	if len(ts) == 0 {
		return nil, &Error{Op: "Thresholds", Param: "epsilon", Value: epsilon, Err: ErrInvalidThresholdRange}
	}
	return ts, nil
}
