// Package presenter turns a page of results into the chat message shown to
// the user: localized text in Telegram HTML and an inline keyboard whose
// buttons carry search_page callbacks.
package presenter

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/core/domain/services"
	"vacancybot/internal/core/ports"
	"vacancybot/internal/pkg/i18n"

	"golang.org/x/text/message"
)

const (
	previousLabel = "◀️"
	nextLabel     = "▶️"
	ellipsisLabel = "..."
)

// Heading selects the first line of a results message.
type Heading int

const (
	// SearchHeading introduces an interactive search.
	SearchHeading Heading = iota
	// DigestHeading introduces a scheduled delivery.
	DigestHeading
)

// Presenter renders results for one language.
type Presenter struct {
	p *message.Printer
}

// New returns a presenter for lang, a Telegram language code or an
// Accept-Language value.
func New(lang string) Presenter {
	return Presenter{p: i18n.Printer(lang)}
}

// Text localizes a message key from the i18n package.
func (pr Presenter) Text(key string, args ...any) string {
	return pr.p.Sprintf(key, args...)
}

// ResultsPage renders the layout's slice of items. items is the whole result
// list; the layout selects the visible part and numbering continues across
// pages.
func (pr Presenter) ResultsPage(heading Heading, query string, items []vacancy.Vacancy, layout services.Layout) ports.Message {
	var b strings.Builder

	switch heading {
	case DigestHeading:
		b.WriteString(pr.p.Sprintf(i18n.DailyHeader, html.EscapeString(query)))
	default:
		b.WriteString(pr.p.Sprintf(i18n.SearchHeader, strconv.Itoa(layout.TotalFound), html.EscapeString(query)))
	}
	b.WriteString("\n\n")

	for i, item := range vacancy.PageOf(items, layout.Start, layout.End) {
		b.WriteString(pr.entry(layout.Start+i+1, item))
	}

	if layout.TotalPages > 1 {
		b.WriteString(pr.p.Sprintf(i18n.PageFooter, layout.PageIndex+1, layout.TotalPages))
	}

	return ports.Message{
		Text:     strings.TrimRight(b.String(), "\n"),
		Keyboard: Keyboard(query, layout),
	}
}

func (pr Presenter) entry(position int, v vacancy.Vacancy) string {
	company := pr.orUnknown(v.Company)
	location := pr.orUnknown(v.Location)

	var b strings.Builder
	fmt.Fprintf(&b, "%d. <b>%s</b>\n", position, html.EscapeString(v.Title))
	b.WriteString("   " + pr.p.Sprintf(i18n.CompanyLine, html.EscapeString(company)) + "\n")
	b.WriteString("   " + pr.p.Sprintf(i18n.SalaryLine, html.EscapeString(pr.Salary(v.Salary))) + "\n")
	b.WriteString("   " + pr.p.Sprintf(i18n.LocationLine, html.EscapeString(location)) + "\n")
	if v.URL != "" {
		fmt.Fprintf(&b, "   <a href=\"%s\">%s</a>\n", html.EscapeString(v.URL), pr.p.Sprintf(i18n.ViewLink))
	}
	b.WriteString("\n")
	return b.String()
}

func (pr Presenter) orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return pr.p.Sprintf(i18n.Unknown)
	}
	return s
}

// Salary formats a pay range: "from-to CUR", "from+ CUR", "up to to CUR" or
// the localized "not specified". Amounts are printed without digit grouping.
func (pr Presenter) Salary(s *vacancy.Salary) string {
	switch {
	case !s.IsSpecified():
		return pr.p.Sprintf(i18n.SalaryNotSpecified)
	case s.From != nil && s.To != nil:
		return pr.p.Sprintf(i18n.SalaryRange, strconv.Itoa(*s.From), strconv.Itoa(*s.To), s.Currency)
	case s.From != nil:
		return pr.p.Sprintf(i18n.SalaryFrom, strconv.Itoa(*s.From), s.Currency)
	default:
		return pr.p.Sprintf(i18n.SalaryUpTo, strconv.Itoa(*s.To), s.Currency)
	}
}

// Keyboard lays the layout's buttons out in a single row: previous, page
// numbers with ellipses, next. A layout with one page or none has no keyboard.
func Keyboard(query string, layout services.Layout) [][]ports.Button {
	if layout.TotalPages <= 1 {
		return nil
	}

	row := make([]ports.Button, 0, len(layout.Pages)+len(layout.Navigation))
	for _, nav := range layout.Navigation {
		if nav.Kind == services.PreviousButton {
			row = append(row, ports.Button{Text: previousLabel, CallbackData: SearchPageCallback(query, nav.Page)})
		}
	}
	for _, btn := range layout.Pages {
		row = append(row, pageButton(query, btn))
	}
	for _, nav := range layout.Navigation {
		if nav.Kind == services.NextButton {
			row = append(row, ports.Button{Text: nextLabel, CallbackData: SearchPageCallback(query, nav.Page)})
		}
	}

	return [][]ports.Button{row}
}

func pageButton(query string, btn services.Button) ports.Button {
	if btn.Kind == services.EllipsisButton {
		return ports.Button{Text: ellipsisLabel, CallbackData: NoopCallback}
	}

	label := strconv.Itoa(btn.Page + 1)
	if btn.Current {
		label = "• " + label + " •"
	}
	return ports.Button{Text: label, CallbackData: SearchPageCallback(query, btn.Page)}
}
