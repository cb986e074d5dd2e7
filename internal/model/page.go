package model

// Page is the response envelope for one page of sales rows.
type Page struct {
	Data       []*SaleRecord `json:"data"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	Limit      int           `json:"limit"`
}

// NewPage assembles the envelope. Data is never nil so it encodes as [].
func NewPage(rows []*SaleRecord, total, page, limit int) *Page {
	if rows == nil {
		rows = []*SaleRecord{}
	}
	return &Page{
		Data:       rows,
		Total:      total,
		Page:       page,
		TotalPages: TotalPages(total, limit),
		Limit:      limit,
	}
}

// TotalPages returns ceil(total/limit), and 0 for an empty result.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
