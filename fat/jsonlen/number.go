package jsonlen

// Uint64 returns the number of digits in the decimal JSON encoding of d.
func Uint64(d uint64) int {
	l := 1
	for ; d >= 10; d /= 10 {
		l++
	}
	return l
}

// Int64 returns the length of the decimal JSON encoding of d, including the
// sign of a negative d.
func Int64(d int64) int {
	if d >= 0 {
		return Uint64(uint64(d))
	}
	// -(d+1) cannot overflow, even for math.MinInt64.
	return 1 + Uint64(uint64(-(d+1))+1)
}
