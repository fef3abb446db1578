package excel

// RawRows is the positional content of a data file: one header row and the
// data rows, every data row padded to the header width.
type RawRows struct {
	Headers []string
	Rows    [][]string
}

// Column returns the raw cells of column i
func (d *RawRows) Column(i int) []string {
	out := make([]string, len(d.Rows))
	for r, row := range d.Rows {
		out[r] = row[i]
	}
	return out
}
