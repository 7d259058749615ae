package service

import (
	"strconv"
	"strings"

	"expo/repository"

	"github.com/shopspring/decimal"
)

const (
	maxLoanMonths = 1200
	maxSplitWays  = 1000
	rateScale     = 20
)

var hundred = decimal.NewFromInt(100)

// EMIResult equated monthly instalment of a loan
type EMIResult struct {
	Principal     decimal.Decimal `json:"principal"`
	AnnualRate    decimal.Decimal `json:"annual_rate"`
	Months        int             `json:"months"`
	Installment   decimal.Decimal `json:"installment"`
	TotalPayment  decimal.Decimal `json:"total_payment"`
	TotalInterest decimal.Decimal `json:"total_interest"`
}

// EMI computes P·i·(1+i)^n / ((1+i)^n − 1) with i the monthly rate.
// A zero rate spreads the principal evenly.
func EMI(principal, annualRate, months string) (*EMIResult, error) {
	p, err := positiveDecimal("principal", principal)
	if err != nil {
		return nil, err
	}
	rate, err := nonNegativeDecimal("rate", annualRate)
	if err != nil {
		return nil, err
	}
	n, err := boundedInt("months", months, maxLoanMonths)
	if err != nil {
		return nil, err
	}

	nd := decimal.NewFromInt(int64(n))
	var installment decimal.Decimal
	if rate.IsZero() {
		installment = p.Div(nd)
	} else {
		i := rate.Div(hundred).Div(decimal.NewFromInt(12))
		growth := decimal.NewFromInt(1)
		factor := growth.Add(i)
		for k := 0; k < n; k++ {
			growth = growth.Mul(factor).Round(rateScale)
		}
		installment = p.Mul(i).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
	}
	installment = installment.Round(2)
	total := installment.Mul(nd)

	return &EMIResult{
		Principal:     p,
		AnnualRate:    rate,
		Months:        n,
		Installment:   installment,
		TotalPayment:  total,
		TotalInterest: total.Sub(p),
	}, nil
}

// GST modes
const (
	GSTAdd    = "add"
	GSTRemove = "remove"
)

// GSTResult goods and services tax breakdown
type GSTResult struct {
	Mode  string          `json:"mode"`
	Rate  decimal.Decimal `json:"rate"`
	Net   decimal.Decimal `json:"net"`
	Tax   decimal.Decimal `json:"tax"`
	CGST  decimal.Decimal `json:"cgst"`
	SGST  decimal.Decimal `json:"sgst"`
	Gross decimal.Decimal `json:"gross"`
}

// GST adds tax to a net amount ("add") or extracts it from a gross amount
// ("remove"). The tax splits evenly into CGST and SGST.
func GST(amount, rate, mode string) (*GSTResult, error) {
	a, err := positiveDecimal("amount", amount)
	if err != nil {
		return nil, err
	}
	r, err := nonNegativeDecimal("rate", rate)
	if err != nil {
		return nil, err
	}

	res := &GSTResult{Rate: r}
	switch strings.TrimSpace(mode) {
	case "", GSTAdd:
		res.Mode = GSTAdd
		res.Net = a.Round(2)
		res.Tax = a.Mul(r).Div(hundred).Round(2)
		res.Gross = res.Net.Add(res.Tax)
	case GSTRemove:
		res.Mode = GSTRemove
		res.Gross = a.Round(2)
		res.Net = a.Mul(hundred).Div(hundred.Add(r)).Round(2)
		res.Tax = res.Gross.Sub(res.Net)
	default:
		return nil, &repository.ValidationError{Field: "mode", Message: "Choose add or remove."}
	}
	res.CGST = res.Tax.Div(decimal.NewFromInt(2)).Round(2)
	res.SGST = res.Tax.Sub(res.CGST)
	return res, nil
}

// SplitResult a bill shared between people
type SplitResult struct {
	Total     decimal.Decimal `json:"total"`
	TipRate   decimal.Decimal `json:"tip_rate"`
	Tip       decimal.Decimal `json:"tip"`
	Grand     decimal.Decimal `json:"grand"`
	People    int             `json:"people"`
	PerPerson decimal.Decimal `json:"per_person"`
	// Remainder paise left after the even split, added to one share
	Remainder decimal.Decimal `json:"remainder"`
}

// SplitBill divides total plus tip between people
func SplitBill(total, people, tipRate string) (*SplitResult, error) {
	t, err := positiveDecimal("total", total)
	if err != nil {
		return nil, err
	}
	n, err := boundedInt("people", people, maxSplitWays)
	if err != nil {
		return nil, err
	}
	tipRateValue := decimal.Zero
	if strings.TrimSpace(tipRate) != "" {
		if tipRateValue, err = nonNegativeDecimal("tip", tipRate); err != nil {
			return nil, err
		}
	}

	tip := t.Mul(tipRateValue).Div(hundred).Round(2)
	grand := t.Round(2).Add(tip)
	per := grand.Div(decimal.NewFromInt(int64(n))).RoundDown(2)

	return &SplitResult{
		Total:     t.Round(2),
		TipRate:   tipRateValue,
		Tip:       tip,
		Grand:     grand,
		People:    n,
		PerPerson: per,
		Remainder: grand.Sub(per.Mul(decimal.NewFromInt(int64(n)))),
	}, nil
}

func positiveDecimal(field, raw string) (decimal.Decimal, error) {
	d, err := nonNegativeDecimal(field, raw)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsZero() {
		return decimal.Zero, &repository.ValidationError{Field: field, Message: "Enter a number greater than zero."}
	}
	return d, nil
}

func nonNegativeDecimal(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, &repository.ValidationError{Field: field, Message: "Enter a valid number."}
	}
	if d.IsNegative() {
		return decimal.Zero, &repository.ValidationError{Field: field, Message: "Enter a number that is not negative."}
	}
	if d.GreaterThanOrEqual(decimal.New(1, 12)) {
		return decimal.Zero, &repository.ValidationError{Field: field, Message: "Enter a smaller number."}
	}
	return d, nil
}

func boundedInt(field, raw string, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > max {
		return 0, &repository.ValidationError{Field: field, Message: "Enter a whole number between 1 and " + strconv.Itoa(max) + "."}
	}
	return n, nil
}
