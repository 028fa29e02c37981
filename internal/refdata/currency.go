package refdata

// Currency is the display label and symbol for a country. Currency is never
// converted, only rendered.
type Currency struct {
	Code   string
	Symbol string
}

var defaultCurrency = Currency{Code: "USD", Symbol: "$"}

var currencyByCountry = map[string]Currency{
	"Argentina":          {Code: "ARS", Symbol: "$"},
	"Bolivia":            {Code: "BOB", Symbol: "Bs"},
	"Brasil":             {Code: "BRL", Symbol: "R$"},
	"Chile":              {Code: "CLP", Symbol: "$"},
	"China":              {Code: "CNY", Symbol: "¥"},
	"Colombia":           {Code: "COP", Symbol: "$"},
	"Costa Rica":         {Code: "CRC", Symbol: "₡"},
	"Dominican Republic": {Code: "DOP", Symbol: "RD$"},
	"Ecuador":            {Code: "USD", Symbol: "$"},
	"El Salvador":        {Code: "USD", Symbol: "$"},
	"France":             {Code: "EUR", Symbol: "€"},
	"Guatemala":          {Code: "GTQ", Symbol: "Q"},
	"Honduras":           {Code: "HNL", Symbol: "L"},
	"India":              {Code: "INR", Symbol: "₹"},
	"Mexico":             {Code: "MXN", Symbol: "$"},
	"Myanmar":            {Code: "MMK", Symbol: "K"},
	"Nicaragua":          {Code: "NIO", Symbol: "C$"},
	"Panama":             {Code: "PAB", Symbol: "B/."},
	"Paraguay":           {Code: "PYG", Symbol: "₲"},
	"Peru":               {Code: "PEN", Symbol: "S/"},
	"United Kingdom":     {Code: "GBP", Symbol: "£"},
	"United States":      {Code: "USD", Symbol: "$"},
	"Uruguay":            {Code: "UYU", Symbol: "$U"},
	"Venezuela":          {Code: "VES", Symbol: "Bs.S"},
}

// CurrencyForCountry returns the currency for a country name, defaulting to
// USD for unknown countries.
func CurrencyForCountry(country string) Currency {
	if c, ok := currencyByCountry[country]; ok {
		return c
	}
	return defaultCurrency
}
