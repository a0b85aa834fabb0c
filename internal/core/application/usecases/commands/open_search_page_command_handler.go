package commands

import (
	"context"
	"fmt"

	"vacancybot/internal/core/application/usecases/queries"
	"vacancybot/internal/core/ports"
)

// PageReader renders a page of an earlier search.
type PageReader interface {
	Handle(ctx context.Context, query queries.GetSearchPageQuery) (queries.GetSearchPageQueryResponse, error)
}

// OpenSearchPageResult tells the caller what was shown. Noop presses change
// nothing and carry no page.
type OpenSearchPageResult struct {
	Noop bool
	Page queries.GetSearchPageQueryResponse
}

// OpenSearchPageCommandHandler answers results keyboard presses by editing
// the message in place.
type OpenSearchPageCommandHandler struct {
	pages     PageReader
	transport ports.Transport
}

func NewOpenSearchPageCommandHandler(pages PageReader, transport ports.Transport) OpenSearchPageCommandHandler {
	return OpenSearchPageCommandHandler{pages: pages, transport: transport}
}

// Handle returns queries.ErrSearchNotFound when the results expired and
// errs.ErrValueIsOutOfRange for a page that does not exist.
func (h OpenSearchPageCommandHandler) Handle(ctx context.Context, cmd OpenSearchPageCommand) (OpenSearchPageResult, error) {
	if err := cmd.Validate(); err != nil {
		return OpenSearchPageResult{}, err
	}

	callback := cmd.Callback()
	if callback.Noop {
		return OpenSearchPageResult{Noop: true}, nil
	}

	query, err := queries.NewGetSearchPageQuery(cmd.UserID(), callback.Query, callback.Page, cmd.Lang())
	if err != nil {
		return OpenSearchPageResult{}, err
	}

	page, err := h.pages.Handle(ctx, query)
	if err != nil {
		return OpenSearchPageResult{}, err
	}

	if h.transport == nil {
		return OpenSearchPageResult{}, ErrTransportNotConfigured
	}

	target := ports.ChatTarget{ChatID: cmd.ChatID(), MessageID: cmd.MessageID()}
	if err = h.transport.SendOrEdit(ctx, target, page.Message); err != nil {
		return OpenSearchPageResult{Page: page}, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	return OpenSearchPageResult{Page: page}, nil
}
