package report

// PageButton is one entry of the pagination control.
// Gap entries stand for skipped page numbers and carry Page 0.
type PageButton struct {
	Page    int  `json:"page,omitempty"`
	Current bool `json:"current,omitempty"`
	Gap     bool `json:"gap,omitempty"`
}

// PageButtons lists 1, ..., current-1, current, current+1, ..., total.
func PageButtons(current, total int) []PageButton {
	total = max(total, 1)
	current = max(1, min(current, total))

	buttons := []PageButton{{Page: 1, Current: current == 1}}
	if current > 3 {
		buttons = append(buttons, PageButton{Gap: true})
	}
	for p := current - 1; p <= current+1; p++ {
		if p > 1 && p < total {
			buttons = append(buttons, PageButton{Page: p, Current: p == current})
		}
	}
	if current < total-2 {
		buttons = append(buttons, PageButton{Gap: true})
	}
	if total > 1 {
		buttons = append(buttons, PageButton{Page: total, Current: current == total})
	}
	return buttons
}
