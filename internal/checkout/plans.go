package checkout

import (
	"strconv"
	"strings"
)

type Plan struct {
	ID        string
	Price     int64
	Label     string
	Validity  string
	Popular   bool
	BestValue bool
	Savings   string
}

// Badge is the promotional label shown on the plan card, if any.
func (p Plan) Badge() string {
	switch {
	case p.Popular:
		return "Popular"
	case p.BestValue:
		return "Best Value"
	default:
		return p.Savings
	}
}

var Plans = []Plan{
	{ID: "6hrs", Price: 1300, Label: "Quick Pass", Validity: "6 hours"},
	{ID: "8hrs", Price: 2000, Label: "Day Pass", Validity: "8 hours"},
	{ID: "2days", Price: 3400, Label: "Weekend", Validity: "2 days"},
	{ID: "1week", Price: 7500, Label: "Weekly", Validity: "1 week", Popular: true},
	{ID: "3weeks", Price: 15000, Label: "Bi-Weekly+", Validity: "3 weeks", Savings: "Save 33%"},
	{ID: "1month", Price: 42500, Label: "Monthly", Validity: "1 month"},
	{ID: "3months", Price: 83000, Label: "Quarterly", Validity: "3 months", Savings: "Save 35%"},
	{ID: "1year", Price: 100000, Label: "Annual", Validity: "1 year", BestValue: true, Savings: "Save 80%"},
	{ID: "2years", Price: 194000, Label: "Mega Plan", Validity: "2 years", Savings: "Save 81%"},
}

func FindPlan(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

type PaymentMethod string

const (
	MethodMobileMoney PaymentMethod = "mobile-money"
	MethodCard        PaymentMethod = "card"
	MethodPesapal     PaymentMethod = "pesapal"
	MethodPayPal      PaymentMethod = "paypal"
	MethodBank        PaymentMethod = "bank"
)

type PaymentOption struct {
	ID          PaymentMethod
	Name        string
	Description string
}

var PaymentOptions = []PaymentOption{
	{ID: MethodMobileMoney, Name: "Mobile Money", Description: "MTN MoMo, Airtel Money"},
	{ID: MethodCard, Name: "Credit / Debit Card", Description: "Visa, Mastercard"},
	{ID: MethodPesapal, Name: "Pesapal", Description: "Multiple payment options"},
	{ID: MethodPayPal, Name: "PayPal", Description: "International payments"},
	{ID: MethodBank, Name: "Bank Transfer", Description: "Direct bank deposit"},
}

func FindPaymentOption(id PaymentMethod) (PaymentOption, bool) {
	for _, o := range PaymentOptions {
		if o.ID == id {
			return o, true
		}
	}
	return PaymentOption{}, false
}

// FormatUGX renders an amount the way the plan cards show it: "UGX 7,500".
func FormatUGX(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return "UGX " + sign + b.String()
}
