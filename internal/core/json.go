package core

import "strconv"

// marshalTriple renders three ints as a compact JSON array "[a,b,c]",
// the [row, col, t] wire shape spec.md §6 fixes for path entries.
// Avoids a reflection-based json.Marshal round trip
// for a shape this simple and this hot (it runs once per path state).
func marshalTriple(a, b, c int) ([]byte, error) {
	buf := make([]byte, 0, 24)
	buf = append(buf, '[')
	buf = strconv.AppendInt(buf, int64(a), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(b), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(c), 10)
	buf = append(buf, ']')
	return buf, nil
}

// marshalPair renders two ints as "[a,b]", the [row, col] wire shape
// for a bare cell or an edge endpoint.
func marshalPair(a, b int) ([]byte, error) {
	buf := make([]byte, 0, 16)
	buf = append(buf, '[')
	buf = strconv.AppendInt(buf, int64(a), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(b), 10)
	buf = append(buf, ']')
	return buf, nil
}
