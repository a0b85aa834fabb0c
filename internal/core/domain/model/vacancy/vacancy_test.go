package vacancy_test

import (
	"testing"

	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestVacancy_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		vacancy vacancy.Vacancy
		wantErr error
	}{
		{name: "valid", vacancy: vacancy.Vacancy{ExternalID: "93353083", Title: "Go developer"}},
		{name: "missing_external_id", vacancy: vacancy.Vacancy{Title: "Go developer"}, wantErr: errs.ErrValueIsRequired},
		{name: "blank_title", vacancy: vacancy.Vacancy{ExternalID: "1", Title: "  "}, wantErr: errs.ErrValueIsRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.vacancy.Validate()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSalary_IsSpecified(t *testing.T) {
	var missing *vacancy.Salary
	assert.False(t, missing.IsSpecified())
	assert.False(t, (&vacancy.Salary{Currency: "RUR"}).IsSpecified())
	assert.True(t, (&vacancy.Salary{From: intPtr(100000)}).IsSpecified())
}

func TestPageOf(t *testing.T) {
	items := []vacancy.Vacancy{{ExternalID: "1"}, {ExternalID: "2"}, {ExternalID: "3"}}

	assert.Equal(t, []string{"2", "3"}, vacancy.ExternalIDs(vacancy.PageOf(items, 1, 3)))
	assert.Equal(t, []string{"3"}, vacancy.ExternalIDs(vacancy.PageOf(items, 2, 10)))
	assert.Empty(t, vacancy.PageOf(items, 3, 5))
}

func TestNewQuery(t *testing.T) {
	t.Run("trims_text", func(t *testing.T) {
		q, err := vacancy.NewQuery("  golang  ", " 1 ", vacancy.SearchFilters{}, true)

		require.NoError(t, err)
		assert.Equal(t, "golang", q.Text)
		assert.Equal(t, "1", q.AreaID)
		assert.True(t, q.TitleOnly)
	})

	t.Run("blank_text_is_rejected", func(t *testing.T) {
		_, err := vacancy.NewQuery(" \t", "", vacancy.SearchFilters{}, false)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("normalization_keeps_case", func(t *testing.T) {
		assert.NotEqual(t, vacancy.NormalizeText("Go"), vacancy.NormalizeText("go"))
		assert.Equal(t, vacancy.NormalizeText("go "), vacancy.NormalizeText(" go"))
	})
}

func TestSearchFilters_IsEmpty(t *testing.T) {
	assert.True(t, vacancy.SearchFilters{}.IsEmpty())
	assert.False(t, vacancy.SearchFilters{Experience: "between1And3"}.IsEmpty())
}
