// Package i18n renders the user-facing strings of the bot in the user's
// language. Only English and Russian are bundled; anything else falls back to
// English.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. Keys are also the English fallback text.
const (
	SearchHeader         = "Found %s vacancies for \"%s\":"
	PageFooter           = "Page %d of %d"
	SalaryNotSpecified   = "Not specified"
	SalaryRange          = "%s-%s %s"
	SalaryFrom           = "%s+ %s"
	SalaryUpTo           = "up to %s %s"
	CompanyLine          = "Company: %s"
	SalaryLine           = "Salary: %s"
	LocationLine         = "Location: %s"
	ViewLink             = "View on HH.ru"
	Unknown              = "N/A"
	DailyHeader          = "New vacancies for \"%s\":"
	ServiceUnavailable   = "The vacancy search service is temporarily unavailable. Please try again later."
	TryAgainLater        = "Something went wrong. Please try again later."
	NothingFound         = "Nothing was found for your query. Try different keywords."
	SearchExpired        = "These results are no longer available. Please repeat the search."
	InvalidRequest       = "The request is invalid."
	NotFound             = "Nothing matches this request."
	DeliveryNotScheduled = "Daily delivery is not scheduled for this user."
)

var (
	supported = []language.Tag{language.English, language.Russian}
	matcher   = language.NewMatcher(supported)
	cat       = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	ru := map[string]string{
		SearchHeader:         "Найдено %s вакансий по запросу \"%s\":",
		PageFooter:           "Страница %d из %d",
		SalaryNotSpecified:   "Не указана",
		SalaryRange:          "%s-%s %s",
		SalaryFrom:           "от %s %s",
		SalaryUpTo:           "до %s %s",
		CompanyLine:          "Компания: %s",
		SalaryLine:           "Зарплата: %s",
		LocationLine:         "Город: %s",
		ViewLink:             "Открыть на HH.ru",
		Unknown:              "н/д",
		DailyHeader:          "Новые вакансии по запросу \"%s\":",
		ServiceUnavailable:   "Сервис поиска вакансий временно недоступен. Попробуйте позже.",
		TryAgainLater:        "Что-то пошло не так. Попробуйте позже.",
		NothingFound:         "По вашему запросу ничего не найдено. Попробуйте другие ключевые слова.",
		SearchExpired:        "Эти результаты больше недоступны. Повторите поиск.",
		InvalidRequest:       "Некорректный запрос.",
		NotFound:             "По этому запросу ничего нет.",
		DeliveryNotScheduled: "Ежедневная рассылка для этого пользователя не настроена.",
	}
	for key, text := range ru {
		_ = b.SetString(language.Russian, key, text)
		_ = b.SetString(language.English, key, key)
	}

	return b
}

// Printer returns a printer for the best supported match of lang, which may be
// a Telegram language code ("ru", "en-US") or an Accept-Language header value.
func Printer(lang string) *message.Printer {
	return message.NewPrinter(Match(lang), message.Catalog(cat))
}

// Match resolves lang to one of the bundled languages.
func Match(lang string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}
