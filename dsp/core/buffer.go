package core

// Grow returns buf resliced to n samples when its capacity allows, and a
// new zeroed slice otherwise. grew reports the reallocation so realtime
// callers can log it.
func Grow(buf []float64, n int) (out []float64, grew bool) {
	n = max(n, 0)
	if n <= cap(buf) {
		return buf[:n], false
	}

	return make([]float64, n), true
}
