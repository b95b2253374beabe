package repository

// nextID aloca o próximo id inteiro de uma coleção: 1 quando vazia, senão o
// maior id existente + 1. Exclusões intermediárias não afetam a sequência,
// mas excluir o registro de maior id permite que esse id seja realocado na
// inserção seguinte.
func nextID[E any](items []E, id func(E) int) int {
	max := 0
	for _, it := range items {
		if v := id(it); v > max {
			max = v
		}
	}
	return max + 1
}
