package speech

// DomainPhrases is the fixed finance vocabulary passed to providers that
// support phrase boosting. Weights bias recognition toward currency words
// and finance verbs in Uzbek/Russian mixed speech.
func DomainPhrases() []Phrase {
	return []Phrase{
		{Text: "so'm", Boost: 15},
		{Text: "sum", Boost: 10},
		{Text: "dollar", Boost: 10},
		{Text: "evro", Boost: 10},
		{Text: "rubl", Boost: 10},
		{Text: "ming", Boost: 12},
		{Text: "mln", Boost: 12},
		{Text: "million", Boost: 12},
		{Text: "milliard", Boost: 10},
		{Text: "qarz", Boost: 15},
		{Text: "berdim", Boost: 10},
		{Text: "oldim", Boost: 10},
		{Text: "kirim", Boost: 12},
		{Text: "chiqim", Boost: 12},
		{Text: "oylik", Boost: 12},
		{Text: "maosh", Boost: 12},
		{Text: "xarajat", Boost: 10},
		{Text: "daromad", Boost: 10},
		{Text: "qaytarish", Boost: 8},
		{Text: "dekabr", Boost: 5},
		{Text: "hafta", Boost: 5},
	}
}
