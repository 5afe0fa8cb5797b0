package trip

import (
	"strconv"

	"trulytravels/pkg/pdf"
)

const summaryTitle = "TrulyTravels - Trip Summary"

func summaryFor(t Trip, currency string) pdf.Summary {
	b := t.Breakdown
	amount := func(v int64) string { return pdf.FormatAmount(currency, v) }

	return pdf.Summary{
		Title: summaryTitle,
		Details: []pdf.Line{
			{Label: "From", Value: place(t.Origin, t.OriginCode)},
			{Label: "To", Value: place(t.Destination, t.DestinationCode)},
			{Label: "Dates", Value: t.StartDate + " to " + t.EndDate},
			{Label: "Travelers", Value: strconv.Itoa(t.Travelers.Int())},
		},
		ItemsHeading: "Cost Breakdown:",
		Items: []pdf.Line{
			{Label: "Transportation", Value: amount(b.Transportation)},
			{Label: "Accommodation", Value: amount(b.Accommodation)},
			{Label: "Food", Value: amount(b.Food)},
			{Label: "Activities", Value: amount(b.Activities)},
			{Label: "Misc", Value: amount(b.Misc)},
		},
		Total: pdf.Line{Label: "Total", Value: amount(b.Total())},
	}
}

func place(name, code string) string {
	if code == "" {
		return name
	}
	return name + " (" + code + ")"
}
