package catalog

// Page is one slice of a filtered result.
type Page struct {
	Items      []FileRecord `json:"items"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Total      int          `json:"total"`
	// First and Last are 1-based positions of the shown items; both are 0
	// when the page is empty.
	First   int  `json:"first"`
	Last    int  `json:"last"`
	HasMore bool `json:"has_more"`
}

// TotalPages is ceil(total/perPage) but never below 1.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate cuts records into pages of perPage and returns the requested
// page after clamping it.
func Paginate(records []FileRecord, page, perPage int) Page {
	if perPage <= 0 {
		perPage = len(records)
		if perPage == 0 {
			perPage = 1
		}
	}
	total := len(records)
	pages := TotalPages(total, perPage)
	page = ClampPage(page, pages)

	start := (page - 1) * perPage
	end := min(start+perPage, total)

	p := Page{
		Items:      []FileRecord{},
		Page:       page,
		TotalPages: pages,
		Total:      total,
		HasMore:    page < pages,
	}
	if start < end {
		p.Items = records[start:end]
		p.First = start + 1
		p.Last = end
	}
	return p
}

// ItemsPerPage is the search view's fixed page size.
const ItemsPerPage = 12
