package mensa

// Group is a named section of a page, such as "Hauptgerichte" on a menu or a
// university on the facility list. Groups produced by the parsers always hold
// at least one item.
type Group[T any] struct {
	Name  string `json:"name"`
	Items []T    `json:"items"`
}

// Response is everything extracted from one page, in page order.
type Response[T any] []Group[T]

// Len returns the total number of items across all groups.
func (r Response[T]) Len() int {
	var n int
	for _, g := range r {
		n += len(g.Items)
	}
	return n
}

// Filter returns a new Response holding only the items for which keep
// returns true. Groups left without items are dropped. The relative order of
// groups and of items within a group is preserved, and r is not modified.
func Filter[T any](r Response[T], keep func(T) bool) Response[T] {
	out := make(Response[T], 0, len(r))
	for _, g := range r {
		var items []T
		for _, item := range g.Items {
			if keep(item) {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, Group[T]{Name: g.Name, Items: items})
	}
	return out
}
