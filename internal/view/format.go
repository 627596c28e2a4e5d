package view

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DisplayDateLayout renders dates as abbreviated month, day, year.
const DisplayDateLayout = "Jan 2, 2006"

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders whole US dollars with thousands separators.
func FormatCurrency(amount float64) string {
	n := int64(math.Round(amount))
	if n < 0 {
		return usd.Sprintf("-$%d", -n)
	}

	return usd.Sprintf("$%d", n)
}

// FormatDate renders an ISO date for display. Input that does not parse is
// returned unchanged.
func FormatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}

	return t.Format(DisplayDateLayout)
}

// FormatPercent renders n as "n%".
func FormatPercent(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64) + "%"
}

// Tone is the color family of a chip.
type Tone string

// Tone constants. ToneNeutral is used for values without a dedicated color.
const (
	ToneBlue    Tone = "blue"
	ToneYellow  Tone = "yellow"
	TonePurple  Tone = "purple"
	ToneOrange  Tone = "orange"
	ToneGreen   Tone = "green"
	ToneRed     Tone = "red"
	ToneNeutral Tone = "gray"
)

var chipTones = map[string]Tone{
	"New":         ToneBlue,
	"Qualified":   ToneYellow,
	"Proposal":    TonePurple,
	"Negotiation": ToneOrange,
	"Won":         ToneGreen,
	"Lost":        ToneRed,
	"Low":         ToneNeutral,
	"Medium":      ToneBlue,
	"High":        ToneOrange,
	"Critical":    ToneRed,
}

// ChipTone returns the color for a status or priority value.
func ChipTone(value string) Tone {
	if t, ok := chipTones[value]; ok {
		return t
	}

	return ToneNeutral
}
