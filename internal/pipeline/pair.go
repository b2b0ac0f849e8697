package pipeline

// Pair regroups items into two-column rows: {first, second} per pair, in
// order. An odd trailing item yields a row with only "first". Templates read
// the optional cell with `index . "second"`.
func Pair(items []any) []map[string]any {
	rows := make([]map[string]any, 0, (len(items)+1)/2)
	for i := 0; i < len(items); i += 2 {
		row := map[string]any{"first": items[i]}
		if i+1 < len(items) {
			row["second"] = items[i+1]
		}
		rows = append(rows, row)
	}
	return rows
}
