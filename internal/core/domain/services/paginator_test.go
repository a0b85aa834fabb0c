package services_test

import (
	"strconv"
	"strings"
	"testing"

	"vacancybot/internal/core/domain/services"
	"vacancybot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// describe renders page buttons 1-based, the current page in brackets.
func describe(buttons []services.Button) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		switch {
		case b.Kind == services.EllipsisButton:
			parts = append(parts, "…")
		case b.Current:
			parts = append(parts, "["+strconv.Itoa(b.Page+1)+"]")
		default:
			parts = append(parts, strconv.Itoa(b.Page+1))
		}
	}
	return strings.Join(parts, " ")
}

func TestPaginator_Render_FirstOfFivePages(t *testing.T) {
	// Given
	p := services.NewPaginator()

	// When
	layout, err := p.Render(23, 0, 5, 412)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 0, layout.Start)
	assert.Equal(t, 5, layout.End)
	assert.Equal(t, 5, layout.TotalPages)
	assert.Equal(t, 412, layout.TotalFound)
	assert.Equal(t, "[1] 2 3 4 5", describe(layout.Pages))
	require.Len(t, layout.Navigation, 1)
	assert.Equal(t, services.Button{Kind: services.NextButton, Page: 1}, layout.Navigation[0])
}

func TestPaginator_Render_LastPartialPage(t *testing.T) {
	layout, err := services.NewPaginator().Render(23, 4, 5, 23)

	require.NoError(t, err)
	assert.Equal(t, 20, layout.Start)
	assert.Equal(t, 23, layout.End)
	require.Len(t, layout.Navigation, 1)
	assert.Equal(t, services.PreviousButton, layout.Navigation[0].Kind)
	assert.Equal(t, 3, layout.Navigation[0].Page)
}

func TestPaginator_Render_Windows(t *testing.T) {
	testCases := []struct {
		name       string
		totalItems int
		pageIndex  int
		want       string
	}{
		{name: "seven_pages_show_all", totalItems: 35, pageIndex: 3, want: "1 2 3 [4] 5 6 7"},
		{name: "nine_pages_first", totalItems: 45, pageIndex: 0, want: "[1] 2 3 … 9"},
		{name: "nine_pages_second", totalItems: 45, pageIndex: 1, want: "1 [2] 3 … 9"},
		{name: "nine_pages_fourth", totalItems: 45, pageIndex: 3, want: "1 … 3 [4] 5 … 9"},
		{name: "nine_pages_last", totalItems: 45, pageIndex: 8, want: "1 … 7 8 [9]"},
		{name: "ten_pages_sixth", totalItems: 50, pageIndex: 5, want: "1 … 5 [6] 7 … 10"},
		{name: "ten_pages_third", totalItems: 50, pageIndex: 2, want: "1 2 [3] 4 … 10"},
		{name: "eight_pages_one_before_last", totalItems: 40, pageIndex: 6, want: "1 … 6 [7] 8"},
		{name: "single_page", totalItems: 3, pageIndex: 0, want: "[1]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			layout, err := services.NewPaginator().Render(tc.totalItems, tc.pageIndex, 5, tc.totalItems)

			require.NoError(t, err)
			assert.Equal(t, tc.want, describe(layout.Pages))
		})
	}
}

func TestPaginator_Render_EllipsisIsInert(t *testing.T) {
	layout, err := services.NewPaginator().Render(90, 9, 5, 90)
	require.NoError(t, err)

	ellipses := 0
	for _, b := range layout.Pages {
		if b.Kind == services.EllipsisButton {
			ellipses++
			assert.Equal(t, -1, b.Page)
		}
	}
	assert.Equal(t, 2, ellipses)
}

func TestPaginator_Render_EveryPageOnceWhenSmall(t *testing.T) {
	for totalPages := 1; totalPages <= services.MaxFullPages; totalPages++ {
		for pageIndex := range totalPages {
			layout, err := services.NewPaginator().Render(totalPages*5, pageIndex, 5, 0)
			require.NoError(t, err)

			seen := map[int]int{}
			for _, b := range layout.Pages {
				require.Equal(t, services.PageButton, b.Kind)
				seen[b.Page]++
			}
			assert.Len(t, seen, totalPages)
			for page, count := range seen {
				assert.Equal(t, 1, count, "page %d", page)
			}
		}
	}
}

func TestPaginator_Render_NavigationPresence(t *testing.T) {
	for pageIndex := range 12 {
		layout, err := services.NewPaginator().Render(60, pageIndex, 5, 60)
		require.NoError(t, err)

		var hasPrev, hasNext bool
		for _, b := range layout.Navigation {
			hasPrev = hasPrev || b.Kind == services.PreviousButton
			hasNext = hasNext || b.Kind == services.NextButton
		}
		assert.Equal(t, pageIndex > 0, hasPrev, "page %d", pageIndex)
		assert.Equal(t, pageIndex < 11, hasNext, "page %d", pageIndex)
	}
}

func TestPaginator_Render_Empty(t *testing.T) {
	layout, err := services.NewPaginator().Render(0, 0, 5, 0)

	require.NoError(t, err)
	assert.True(t, layout.IsEmpty())
	assert.Empty(t, layout.Pages)
	assert.Empty(t, layout.Navigation)
}

func TestPaginator_Render_RejectsBadInput(t *testing.T) {
	testCases := []struct {
		name       string
		totalItems int
		pageIndex  int
		pageSize   int
	}{
		{name: "page_past_end", totalItems: 23, pageIndex: 5, pageSize: 5},
		{name: "negative_page", totalItems: 23, pageIndex: -1, pageSize: 5},
		{name: "zero_page_size", totalItems: 23, pageIndex: 0, pageSize: 0},
		{name: "non_zero_page_of_nothing", totalItems: 0, pageIndex: 1, pageSize: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := services.NewPaginator().Render(tc.totalItems, tc.pageIndex, tc.pageSize, 0)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		})
	}
}
