package domain

import "testing"

func TestMoney_MulFloat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		amount Money
		factor float64
		want   Money
	}{
		{"whole multiple", 2500, 5.0, 12500},
		{"fractional distance", 2500, 5.5, 13750},
		{"rounds half away from zero", 100, 0.125, 13},
		{"negative amount rounds away from zero", -100, 0.125, -13},
		{"zero factor", 2500, 0, 0},
		{"vehicle multiplier", 2500, 7.5, 18750},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := tc.amount.MulFloat(tc.factor)
			if got != tc.want {
				t.Errorf("MulFloat(%v, %v) = %v, want %v", tc.amount, tc.factor, got, tc.want)
			}
		})
	}
}

func TestMoney_Percent(t *testing.T) {
	t.Parallel()

	if got := Money(23750).Percent(20); got != 4750 {
		t.Errorf("Percent(20) = %v, want 4750", got)
	}
	if got := Money(10000).Percent(12.5); got != 1250 {
		t.Errorf("Percent(12.5) = %v, want 1250", got)
	}
	if got := Money(0).Percent(20); got != 0 {
		t.Errorf("Percent on zero = %v, want 0", got)
	}
}

func TestMoney_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount Money
		want   string
	}{
		{23750, "237.50"},
		{5, "0.05"},
		{0, "0.00"},
		{-150, "-1.50"},
	}

	for _, tc := range cases {
		if got := tc.amount.String(); got != tc.want {
			t.Errorf("Money(%d).String() = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestMoneyFromFloat(t *testing.T) {
	t.Parallel()

	if got := MoneyFromFloat(237.50); got != 23750 {
		t.Errorf("MoneyFromFloat(237.50) = %v, want 23750", got)
	}
	if got := MoneyFromFloat(0.005); got != 1 {
		t.Errorf("MoneyFromFloat(0.005) = %v, want 1", got)
	}
}

func TestMaxMoney(t *testing.T) {
	t.Parallel()

	if got := MaxMoney(100, 200); got != 200 {
		t.Errorf("MaxMoney(100, 200) = %v, want 200", got)
	}
	if got := MaxMoney(200, 100); got != 200 {
		t.Errorf("MaxMoney(200, 100) = %v, want 200", got)
	}
}
