// Package queries contains read operations. Queries never call the listings
// provider: they serve what an earlier search left in the cache or the
// result store.
package queries

import (
	"errors"
	"strings"

	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/pkg/errs"
	"vacancybot/internal/pkg/guard"
)

var ErrGetSearchPageQueryIsNotConstructed = errors.New(
	"GetSearchPageQuery must be created via NewGetSearchPageQuery constructor",
)

// GetSearchPageQuery asks for one page of a user's earlier search.
//
// Example:
//
//	query, err := NewGetSearchPageQuery(userID, "golang", 2, "en")
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
//	if errors.Is(err, ErrSearchNotFound) {
//	    // ask the user to search again
//	}
type GetSearchPageQuery struct { //nolint:recvcheck //using for validation
	userID int64
	text   string
	page   int
	lang   string

	guard guard.ConstructorGuard
}

// NewGetSearchPageQuery validates the request. page is 0-based; whether it
// exists is only known once the results are loaded.
func NewGetSearchPageQuery(userID int64, text string, page int, lang string) (GetSearchPageQuery, error) {
	q := GetSearchPageQuery{
		lang:  strings.TrimSpace(lang),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setUserID(userID),
		q.setText(text),
		q.setPage(page),
	); err != nil {
		return GetSearchPageQuery{}, err
	}

	return q, nil
}

func (q GetSearchPageQuery) Validate() error {
	return q.guard.Validate(ErrGetSearchPageQueryIsNotConstructed)
}

func (q GetSearchPageQuery) UserID() int64 {
	return q.userID
}

func (q GetSearchPageQuery) Text() string {
	return q.text
}

func (q GetSearchPageQuery) Page() int {
	return q.page
}

func (q GetSearchPageQuery) Lang() string {
	return q.lang
}

func (q *GetSearchPageQuery) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsRequiredError("userID")
	}
	q.userID = userID
	return nil
}

func (q *GetSearchPageQuery) setText(text string) error {
	text = vacancy.NormalizeText(text)
	if text == "" {
		return errs.NewValueIsRequiredError("queryText")
	}
	q.text = text
	return nil
}

func (q *GetSearchPageQuery) setPage(page int) error {
	if page < 0 {
		return errs.NewValueIsOutOfRangeError("page", page, 0, "unbounded")
	}
	q.page = page
	return nil
}
