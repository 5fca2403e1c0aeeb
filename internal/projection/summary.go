package projection

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	summaryDaily  = "You can spend %v per day until %v (%d days). %v are left for today."
	summaryNoDays = "The period has ended, there is no daily allowance left."
)

// summaryLanguages are the languages summaries are translated to. The first
// one is the fallback.
var summaryLanguages = []language.Tag{
	language.English,
	language.German,
}

var summaryMatcher = language.NewMatcher(summaryLanguages)

func init() {
	_ = message.SetString(language.German, summaryDaily, "Du kannst %v pro Tag bis zum %v ausgeben (%d Tage). Für heute sind noch %v übrig.")
	_ = message.SetString(language.German, summaryNoDays, "Der Zeitraum ist vorbei, es gibt kein Tagesbudget mehr.")
}

// MatchLanguage returns the supported language that fits an Accept-Language
// header best.
func MatchLanguage(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return summaryLanguages[0]
	}

	_, index, _ := summaryMatcher.Match(tags...)
	return summaryLanguages[index]
}

// Summary describes the result in one sentence in the given language.
func Summary(r Result, tag language.Tag) string {
	p := message.NewPrinter(tag)

	if r.Period.DaysRemaining == 0 {
		return p.Sprintf(summaryNoDays)
	}

	daily := number.Decimal(r.DailyLimit.InexactFloat64(), number.Scale(2))
	remaining := number.Decimal(r.RemainingToday.InexactFloat64(), number.Scale(2))

	return p.Sprintf(summaryDaily, daily, r.Period.End.String(), r.Period.DaysRemaining, remaining)
}
