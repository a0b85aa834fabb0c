package presenter

import (
	"strconv"
	"strings"

	"vacancybot/internal/pkg/errs"
)

const (
	// NoopCallback is attached to buttons that do nothing when pressed.
	NoopCallback = "noop"

	searchPagePrefix = "search_page:"
)

// Callback is a decoded keyboard press.
type Callback struct {
	Noop  bool
	Query string
	Page  int
}

// SearchPageCallback encodes a request for page (0-based) of query's results.
func SearchPageCallback(query string, page int) string {
	return searchPagePrefix + query + ":" + strconv.Itoa(page)
}

// ParseCallback decodes data produced by SearchPageCallback or NoopCallback.
// The query text may itself contain ':'; the page is always the last segment.
func ParseCallback(data string) (Callback, error) {
	if data == NoopCallback {
		return Callback{Noop: true}, nil
	}

	rest, ok := strings.CutPrefix(data, searchPagePrefix)
	if !ok {
		return Callback{}, errs.NewValueIsInvalidError("callbackData")
	}

	sep := strings.LastIndex(rest, ":")
	if sep <= 0 {
		return Callback{}, errs.NewValueIsInvalidError("callbackData")
	}

	page, err := strconv.Atoi(rest[sep+1:])
	if err != nil || page < 0 {
		return Callback{}, errs.NewValueIsInvalidErrorWithCause("callbackPage", err)
	}

	return Callback{Query: rest[:sep], Page: page}, nil
}
