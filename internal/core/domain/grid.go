package domain

// ScanGrid обходит таблицу построчно (row-major) и собирает все ячейки, являющиеся кадастровыми ссылками.
// Дубликаты сохраняются: одна и та же ссылка в разных ячейках дает несколько элементов.
// Строки могут быть разной длины, каждая просматривается до своего конца.
func ScanGrid(grid [][]interface{}) []CadastralReference {
	refs := make([]CadastralReference, 0)
	for _, row := range grid {
		for _, cell := range row {
			if ref, ok := ClassifyReference(cell); ok {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}
