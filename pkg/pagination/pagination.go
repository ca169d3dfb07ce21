package pagination

// Meta mirrors the pagination block returned by every backend list endpoint.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Item is a single entry in the rendered page strip.
type Item struct {
	Number   int
	Ellipsis bool
	Active   bool
}

const maxVisible = 5

// Window computes the condensed page strip for the given current page.
// All pages are shown when the total fits within maxVisible; otherwise a
// sliding window of neighbours plus the first and last page with ellipses.
func Window(current, totalPages int) []Item {
	if totalPages < 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	var items []Item
	page := func(n int) {
		items = append(items, Item{Number: n, Active: n == current})
	}
	gap := func() {
		items = append(items, Item{Ellipsis: true})
	}

	switch {
	case totalPages <= maxVisible:
		for i := 1; i <= totalPages; i++ {
			page(i)
		}
	case current <= 3:
		for i := 1; i <= 4; i++ {
			page(i)
		}
		gap()
		page(totalPages)
	case current >= totalPages-2:
		page(1)
		gap()
		for i := totalPages - 3; i <= totalPages; i++ {
			page(i)
		}
	default:
		page(1)
		gap()
		for i := current - 1; i <= current+1; i++ {
			page(i)
		}
		gap()
		page(totalPages)
	}

	return items
}

// Clamp keeps a requested page inside the valid range reported by meta.
// A page that emptied out after a delete falls back to the previous one.
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}
