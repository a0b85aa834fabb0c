package services

import (
	"vacancybot/internal/pkg/errs"
)

// MaxFullPages is the largest page count for which every page gets a button.
const MaxFullPages = 7

// ButtonKind tells the presenter how to label and encode a button.
type ButtonKind int

const (
	PageButton ButtonKind = iota
	EllipsisButton
	PreviousButton
	NextButton
)

// Button is one keyboard cell. Page is the 0-based target page; it is -1 for
// ellipsis buttons, which do nothing when pressed.
type Button struct {
	Kind    ButtonKind
	Page    int
	Current bool
}

// Layout is the result of Render: the slice bounds of the requested page and
// the buttons to show under it.
type Layout struct {
	Start      int
	End        int
	PageIndex  int
	PageSize   int
	TotalPages int
	TotalItems int
	// TotalFound is the provider-reported match count; it can exceed TotalItems.
	TotalFound int
	Pages      []Button
	Navigation []Button
}

// IsEmpty reports whether there is nothing to show.
func (l Layout) IsEmpty() bool {
	return l.TotalItems == 0
}

// Paginator is a stateless domain service producing page layouts.
//
// Business rules:
//   - up to MaxFullPages pages every page has its own button
//   - beyond that the first and last page are always shown together with a
//     three page window around the current page; gaps become ellipses
//   - "previous" exists unless on the first page, "next" unless on the last
//
// Example:
//
//	layout, err := services.NewPaginator().Render(len(items), page, 5, found)
//	if err != nil {
//	    return err
//	}
//	visible := vacancy.PageOf(items, layout.Start, layout.End)
type Paginator struct{}

func NewPaginator() Paginator {
	return Paginator{}
}

// Render lays out page pageIndex (0-based) of totalItems split into pages of
// pageSize. A pageIndex outside the existing pages is rejected with
// errs.ErrValueIsOutOfRange; zero items with page 0 yields an empty layout.
func (Paginator) Render(totalItems, pageIndex, pageSize, totalFound int) (Layout, error) {
	if pageSize <= 0 {
		return Layout{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, "unbounded")
	}
	if totalItems < 0 {
		return Layout{}, errs.NewValueIsOutOfRangeError("totalItems", totalItems, 0, "unbounded")
	}

	if totalItems == 0 {
		if pageIndex != 0 {
			return Layout{}, errs.NewValueIsOutOfRangeError("pageIndex", pageIndex, 0, 0)
		}
		return Layout{PageSize: pageSize, TotalFound: totalFound}, nil
	}

	totalPages := (totalItems + pageSize - 1) / pageSize
	if pageIndex < 0 || pageIndex >= totalPages {
		return Layout{}, errs.NewValueIsOutOfRangeError("pageIndex", pageIndex, 0, totalPages-1)
	}

	start := pageIndex * pageSize
	end := min(start+pageSize, totalItems)

	return Layout{
		Start:      start,
		End:        end,
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
		TotalFound: totalFound,
		Pages:      pageButtons(pageIndex, totalPages),
		Navigation: navigationButtons(pageIndex, totalPages),
	}, nil
}

func pageButtons(pageIndex, totalPages int) []Button {
	page := func(n int) Button {
		return Button{Kind: PageButton, Page: n - 1, Current: n-1 == pageIndex}
	}
	ellipsis := Button{Kind: EllipsisButton, Page: -1}

	if totalPages <= MaxFullPages {
		buttons := make([]Button, 0, totalPages)
		for n := 1; n <= totalPages; n++ {
			buttons = append(buttons, page(n))
		}
		return buttons
	}

	// Window of three 1-based pages around the current one, shifted to stay
	// inside [1, totalPages], then trimmed of the always-present first and last.
	current := pageIndex + 1
	lo, hi := current-1, current+1
	if lo < 1 {
		hi += 1 - lo
		lo = 1
	}
	if hi > totalPages {
		lo -= hi - totalPages
		hi = totalPages
	}
	lo = max(lo, 2)
	hi = min(hi, totalPages-1)

	buttons := []Button{page(1)}
	if lo > 2 {
		buttons = append(buttons, ellipsis)
	}
	for n := lo; n <= hi; n++ {
		buttons = append(buttons, page(n))
	}
	if hi < totalPages-1 {
		buttons = append(buttons, ellipsis)
	}
	return append(buttons, page(totalPages))
}

func navigationButtons(pageIndex, totalPages int) []Button {
	var buttons []Button
	if pageIndex > 0 {
		buttons = append(buttons, Button{Kind: PreviousButton, Page: pageIndex - 1})
	}
	if pageIndex < totalPages-1 {
		buttons = append(buttons, Button{Kind: NextButton, Page: pageIndex + 1})
	}
	return buttons
}
