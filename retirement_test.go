package finview

import "testing"

func TestProjectOneYear(t *testing.T) {
	plan := RetirementPlan{
		CurrentAge:         64,
		RetireAge:          65,
		Balance:            M(1000, "USD"),
		AnnualContribution: M(100, "USD"),
		AnnualReturn:       Percent(10),
		WithdrawalRate:     Percent(4),
	}

	proj, err := plan.Project()
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if len(proj.Years) != 1 {
		t.Fatalf("len(Years) = %d want 1", len(proj.Years))
	}
	// 1000 * 1.10 + 100 = 1200
	if want := M(1200, "USD"); !proj.AtRetirement.Equal(want) {
		t.Errorf("AtRetirement = %v want %v", proj.AtRetirement, want)
	}
	// 4% of 1200
	if want := M(48, "USD"); !proj.AnnualIncome.Equal(want) {
		t.Errorf("AnnualIncome = %v want %v", proj.AnnualIncome, want)
	}
	// no inflation: real equals nominal
	if !proj.Real.Equal(proj.AtRetirement) {
		t.Errorf("Real = %v want %v without inflation", proj.Real, proj.AtRetirement)
	}
}

func TestProjectInflationDeflates(t *testing.T) {
	plan := RetirementPlan{
		CurrentAge:   30,
		RetireAge:    32,
		Balance:      M(1000, "EUR"),
		AnnualReturn: Percent(0),
		Inflation:    Percent(100), // halves purchasing power every year
	}

	proj, err := plan.Project()
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if want := M(1000, "EUR"); !proj.AtRetirement.Equal(want) {
		t.Errorf("AtRetirement = %v want %v", proj.AtRetirement, want)
	}
	if want := M(250, "EUR"); !proj.Real.Equal(want) {
		t.Errorf("Real = %v want %v after two years at 100%% inflation", proj.Real, want)
	}
}

func TestProjectDeterministic(t *testing.T) {
	plan := RetirementPlan{
		CurrentAge:         30,
		RetireAge:          60,
		Balance:            M(25000, "USD"),
		AnnualContribution: M(6000, "USD"),
		AnnualReturn:       Percent(6.5),
		Inflation:          Percent(2),
		WithdrawalRate:     Percent(4),
	}
	a, err := plan.Project()
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	b, _ := plan.Project()
	if !a.AtRetirement.Equal(b.AtRetirement) || !a.Real.Equal(b.Real) {
		t.Error("identical plans must project identically")
	}
	if len(a.Years) != 30 {
		t.Errorf("len(Years) = %d want 30", len(a.Years))
	}
}

func TestProjectValidation(t *testing.T) {
	tests := []struct {
		name string
		plan RetirementPlan
	}{
		{"retire age not after current", RetirementPlan{CurrentAge: 65, RetireAge: 65}},
		{"negative balance", RetirementPlan{CurrentAge: 30, RetireAge: 65, Balance: M(-1, "USD")}},
		{"negative contribution", RetirementPlan{CurrentAge: 30, RetireAge: 65, AnnualContribution: M(-1, "USD")}},
		{"absurd return", RetirementPlan{CurrentAge: 30, RetireAge: 65, AnnualReturn: -101}},
		{"absurd inflation", RetirementPlan{CurrentAge: 30, RetireAge: 65, Inflation: -101}},
		// Exactly -100% inflation zeroes the deflator; it must be rejected,
		// not projected into a division by zero.
		{"total deflation", RetirementPlan{CurrentAge: 30, RetireAge: 65, Balance: M(1000, "USD"), Inflation: -100}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.plan.Project(); err == nil {
				t.Error("Project() should have failed validation")
			}
		})
	}
}
