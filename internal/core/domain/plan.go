package domain

import "strings"

type Plan string

const (
	PlanTrial  Plan = "TRIAL"
	PlanFormal Plan = "FORMAL"
)

const formalAmountFen int64 = 100000

// ParsePlan falls back to the trial plan for anything it does not recognise.
func ParsePlan(s string) Plan {
	if strings.ToUpper(strings.TrimSpace(s)) == string(PlanFormal) {
		return PlanFormal
	}
	return PlanTrial
}

// PlanFromAmount maps the two offered charge tiers back to a plan.
func PlanFromAmount(amountFen int64) Plan {
	if amountFen >= formalAmountFen {
		return PlanFormal
	}
	return PlanTrial
}

// PlanCatalog holds the price and quota grant of each plan.
type PlanCatalog struct {
	// AmountOverrideFen replaces every plan price when positive (test payments).
	AmountOverrideFen int64
}

func (c PlanCatalog) AmountFen(p Plan) int64 {
	if c.AmountOverrideFen > 0 {
		return c.AmountOverrideFen
	}
	if p == PlanFormal {
		return formalAmountFen
	}
	return 20000
}

func (c PlanCatalog) Quota(p Plan) int64 {
	if p == PlanFormal {
		return 100000
	}
	return 10000
}

func (c PlanCatalog) Description(p Plan) string {
	if p == PlanFormal {
		return "Quota top-up 1000 CNY (100000 quota)"
	}
	return "Trial account 200 CNY (10000 quota)"
}
