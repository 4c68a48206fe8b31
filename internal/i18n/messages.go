package i18n

var germanMessages = map[string]string{
	"frequency.DAILY":   "täglich",
	"frequency.WEEKLY":  "wöchentlich",
	"frequency.MONTHLY": "monatlich",

	"unit.MINUTES.one":      "Minute",
	"unit.MINUTES.other":    "Minuten",
	"unit.HOURS.one":        "Stunde",
	"unit.HOURS.other":      "Stunden",
	"unit.PIECES.one":       "Stück",
	"unit.PIECES.other":     "Stück",
	"unit.METERS.one":       "Meter",
	"unit.METERS.other":     "Meter",
	"unit.KILOMETERS.one":   "Kilometer",
	"unit.KILOMETERS.other": "Kilometer",
	"unit.LITERS.one":       "Liter",
	"unit.LITERS.other":     "Liter",

	"progress": "%dx %s (%d/%d)",
	"divider":  "Abgeschlossen",

	"scope.ALL":     "Alle",
	"scope.DAILY":   "Heute",
	"scope.WEEKLY":  "Woche",
	"scope.MONTHLY": "Monat",
}

var englishMessages = map[string]string{
	"frequency.DAILY":   "daily",
	"frequency.WEEKLY":  "weekly",
	"frequency.MONTHLY": "monthly",

	"unit.MINUTES.one":      "minute",
	"unit.MINUTES.other":    "minutes",
	"unit.HOURS.one":        "hour",
	"unit.HOURS.other":      "hours",
	"unit.PIECES.one":       "piece",
	"unit.PIECES.other":     "pieces",
	"unit.METERS.one":       "meter",
	"unit.METERS.other":     "meters",
	"unit.KILOMETERS.one":   "kilometer",
	"unit.KILOMETERS.other": "kilometers",
	"unit.LITERS.one":       "liter",
	"unit.LITERS.other":     "liters",

	"progress": "%dx %s (%d/%d)",
	"divider":  "Completed",

	"scope.ALL":     "All",
	"scope.DAILY":   "Today",
	"scope.WEEKLY":  "Week",
	"scope.MONTHLY": "Month",
}
