package grid

import "strings"

// SerializeMatrix encodes a rectangular matrix of cell values as
// Excel-compatible TSV: cells joined by tabs, rows by newlines, no trailing
// newline. Values must not themselves contain tabs or newlines.
func SerializeMatrix(matrix [][]string) string {
	rows := make([]string, len(matrix))
	for i, row := range matrix {
		rows[i] = strings.Join(row, "\t")
	}
	return strings.Join(rows, "\n")
}

// DeserializeMatrix decodes TSV text pasted from a spreadsheet. CRLF line
// endings are normalized to LF and a single trailing newline (Excel appends
// one) is stripped before splitting. Ragged rows are preserved as-is; the
// caller bounds them against the destination grid. Empty input yields an
// empty matrix.
func DeserializeMatrix(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	matrix := make([][]string, len(lines))
	for i, line := range lines {
		matrix[i] = strings.Split(line, "\t")
	}
	return matrix
}
