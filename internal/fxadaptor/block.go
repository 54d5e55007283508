package fxadaptor

import (
	"regexp"
	"strings"
)

var currencyPairPattern = regexp.MustCompile(`^[A-Z]{6}$`)

// RateRecord is the generic rate record citi_rate_block maps from. RateSetID
// is optional: when empty, staticRateSetIDs is consulted (§9 open question).
type RateRecord struct {
	RateSetID   string
	Rate        string
	DecimalRate int
	EndTime     string
}

// CitiRateBlock is the partner-bank-specific inner object §4.6 prescribes.
// Field names match the wire contract exactly, including its inconsistent
// casing, since the receiving bank's schema is fixed.
type CitiRateBlock struct {
	RateSetID      string `json:"rateSetId"`
	CurrencyPair   string `json:"currencyPair"`
	BaseCurrency   string `json:"baseCurrency"`
	RatePrecision  int    `json:"ratePrecision"`
	InvRatePrecision string `json:"invRatePrecision"`
	Tenor          string `json:"tenor"`
	ValueDate      string `json:"valueDate"`
	BidSpotRate    string `json:"bidSpotRate"`
	OfferSpotRate  string `json:"offerSpotRate"`
	MidPrice       string `json:"midPrice"`
	ValidUntilTime string `json:"validUntilTime"`
	IsValid        string `json:"isValid"`
	IsTradable     string `json:"isTradable"`
}

// staticRateSetIDs is the fallback table consulted when a RateRecord omits
// RateSetID (§9 open question: input record wins, then this table, else
// InvalidInput).
var staticRateSetIDs = map[string]string{
	"USDEUR": "RS-USDEUR-01",
	"USDGBP": "RS-USDGBP-01",
	"USDCNY": "RS-USDCNY-01",
	"EURGBP": "RS-EURGBP-01",
}

// CitiRateBlockFor builds the Citi inner rate block for a currency pair and
// rate record.
func CitiRateBlockFor(pair string, rate RateRecord) (CitiRateBlock, error) {
	if !currencyPairPattern.MatchString(pair) {
		return CitiRateBlock{}, &InvalidInputError{Field: "pair", Reason: "must be six uppercase letters"}
	}

	rateSetID := rate.RateSetID
	if rateSetID == "" {
		rateSetID = staticRateSetIDs[pair]
	}
	if rateSetID == "" {
		return CitiRateBlock{}, &InvalidInputError{Field: "rateSetId", Reason: "absent from input and static table"}
	}

	baseCurrency, err := ExtractSourceCurrency(pair)
	if err != nil {
		return CitiRateBlock{}, err
	}

	bidSpotRate, err := BuildDecimalRate(rate.Rate, rate.DecimalRate)
	if err != nil {
		return CitiRateBlock{}, err
	}

	if rate.EndTime == "" {
		return CitiRateBlock{}, &InvalidInputError{Field: "endTime", Reason: "must not be empty"}
	}

	return CitiRateBlock{
		RateSetID:        rateSetID,
		CurrencyPair:     pair,
		BaseCurrency:     baseCurrency,
		RatePrecision:    rate.DecimalRate,
		InvRatePrecision: "1",
		Tenor:            "TN",
		ValueDate:        "0000-00-00",
		BidSpotRate:      bidSpotRate,
		OfferSpotRate:    "0.0000",
		MidPrice:         "0.0000",
		ValidUntilTime:   formatValidUntilTime(rate.EndTime),
		IsValid:          "true",
		IsTradable:       "true",
	}, nil
}

// ExtractSourceCurrency returns the first three letters of a six-letter
// currency pair (the base currency).
func ExtractSourceCurrency(pair string) (string, error) {
	if !currencyPairPattern.MatchString(pair) {
		return "", &InvalidInputError{Field: "pair", Reason: "must be six uppercase letters"}
	}
	return pair[:3], nil
}

// ExtractDestinationCurrency returns the last three letters of a six-letter
// currency pair (the quote currency).
func ExtractDestinationCurrency(pair string) (string, error) {
	if !currencyPairPattern.MatchString(pair) {
		return "", &InvalidInputError{Field: "pair", Reason: "must be six uppercase letters"}
	}
	return pair[3:], nil
}

// ChannelIdentifierInput is the small record buildCustomFxpChannelIdentifier
// (S10) consumes.
type ChannelIdentifierInput struct {
	SourceCurrency      string
	DestinationCurrency string
}

// BuildCustomChannelIdentifier concatenates the two currencies lower-cased,
// regardless of the input's casing (S10).
func BuildCustomChannelIdentifier(input ChannelIdentifierInput) string {
	return strings.ToLower(input.SourceCurrency) + strings.ToLower(input.DestinationCurrency)
}

// formatValidUntilTime replaces the "T" separator with a space and strips a
// trailing "Z", per §4.6.
func formatValidUntilTime(endTime string) string {
	s := strings.Replace(endTime, "T", " ", 1)
	return strings.TrimSuffix(s, "Z")
}
