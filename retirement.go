package finview

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RetirementPlan is the input of a retirement projection.
type RetirementPlan struct {
	CurrentAge         int     `json:"currentAge"`
	RetireAge          int     `json:"retireAge"`
	Balance            Money   `json:"balance"`
	AnnualContribution Money   `json:"annualContribution"`
	AnnualReturn       Percent `json:"annualReturn"`
	Inflation          Percent `json:"inflation"`
	WithdrawalRate     Percent `json:"withdrawalRate"`
}

// RetirementYear is the projected state of the plan at the end of one year.
type RetirementYear struct {
	Age     int   `json:"age"`
	Balance Money `json:"balance"`
	Real    Money `json:"real"` // Balance deflated to today's purchasing power.
}

// RetirementProjection is the year-by-year result of projecting a plan.
type RetirementProjection struct {
	Years        []RetirementYear `json:"years"`
	AtRetirement Money            `json:"atRetirement"`
	Real         Money            `json:"realAtRetirement"`
	AnnualIncome Money            `json:"annualIncome"` // Safe-withdrawal income at retirement.
}

// Validate checks the plan for obvious nonsense before projecting.
func (p RetirementPlan) Validate() error {
	if p.RetireAge <= p.CurrentAge {
		return fmt.Errorf("retirement age %d must be after current age %d", p.RetireAge, p.CurrentAge)
	}
	if p.Balance.IsNegative() {
		return fmt.Errorf("current balance cannot be negative")
	}
	if p.AnnualContribution.IsNegative() {
		return fmt.Errorf("annual contribution cannot be negative")
	}
	if p.AnnualReturn < -100 {
		return fmt.Errorf("rates below -100%% are meaningless")
	}
	// -100% exactly would zero the deflator and make the real column divide
	// by zero.
	if p.Inflation <= -100 {
		return fmt.Errorf("inflation must be above -100%%")
	}
	return nil
}

// Project runs the plan forward one year at a time: grow the balance by the
// expected return, then add the year's contribution. The real column deflates
// each balance by compounded inflation. The whole computation is exact
// decimal arithmetic, so identical plans always project identically.
func (p RetirementPlan) Project() (*RetirementProjection, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	inflation := one.Add(decimal.NewFromFloat(float64(p.Inflation)).Div(hundred))

	proj := &RetirementProjection{}
	balance := p.Balance
	deflator := one
	for age := p.CurrentAge + 1; age <= p.RetireAge; age++ {
		balance = balance.Add(balance.MulPercent(p.AnnualReturn)).Add(p.AnnualContribution)
		deflator = deflator.Mul(inflation)
		proj.Years = append(proj.Years, RetirementYear{
			Age:     age,
			Balance: balance,
			Real:    balance.Div(Q(deflator)),
		})
	}

	last := proj.Years[len(proj.Years)-1]
	proj.AtRetirement = last.Balance
	proj.Real = last.Real
	proj.AnnualIncome = last.Balance.MulPercent(p.WithdrawalRate)
	return proj, nil
}
