package main

import "strings"

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders one value per output cell, max-normalized over the
// slice. Cells with no data stay blank so gaps in sampling read as gaps.
func sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	buckets := rebucket(values, width)
	max := 0.0
	for _, v := range buckets {
		if v > max {
			max = v
		}
	}
	var b strings.Builder
	for _, v := range buckets {
		if max <= 0 || v <= 0 {
			b.WriteRune(' ')
			continue
		}
		idx := int(v / max * float64(len(sparkRunes)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// rebucket resamples values to the requested width, averaging within each
// bucket.
func rebucket(values []float64, width int) []float64 {
	out := make([]float64, width)
	if len(values) == 0 {
		return out
	}
	counts := make([]int, width)
	for i, v := range values {
		bucket := i * width / len(values)
		if bucket >= width {
			bucket = width - 1
		}
		out[bucket] += v
		counts[bucket]++
	}
	for i := range out {
		if counts[i] > 0 {
			out[i] /= float64(counts[i])
		}
	}
	return out
}

// bucketByTime distributes weighted points over width buckets spanning
// [start, end]. Used for marker density strips.
func bucketByTime(times, weights []float64, start, end float64, width int) []float64 {
	out := make([]float64, width)
	if width <= 0 || end <= start {
		return out
	}
	span := end - start
	for i, t := range times {
		if t < start || t > end {
			continue
		}
		bucket := int((t - start) / span * float64(width))
		if bucket >= width {
			bucket = width - 1
		}
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		out[bucket] += w
	}
	return out
}
