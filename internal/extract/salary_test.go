package extract

import "testing"

func TestExtractSalary(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		min, max int
		currency string
	}{
		{
			name: "full range with commas",
			text: "We offer $100,000 - $130,000 plus equity.",
			min:  100000, max: 130000, currency: "USD",
		},
		{
			name: "k notation on both figures",
			text: "Compensation: $100k-$120k depending on experience.",
			min:  100000, max: 120000, currency: "USD",
		},
		{
			name: "k notation applied to both when only the high has it",
			text: "Base salary $100-120k.",
			min:  100000, max: 120000, currency: "USD",
		},
		{
			name: "pounds",
			text: "£65,000 to £80,000 per annum.",
			min:  65000, max: 80000, currency: "GBP",
		},
		{
			name: "salary word without currency symbol",
			text: "Salary range 90,000 to 110,000 for this role.",
			min:  90000, max: 110000, currency: "USD",
		},
		{
			name: "single figure",
			text: "Up to $130,000 for the right candidate.",
			min:  130000, max: 0, currency: "USD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := extractSalary(tt.text, 20000, 2000000)
			if r == nil {
				t.Fatalf("expected a salary range")
			}
			if r.Min == nil || *r.Min != tt.min {
				t.Fatalf("unexpected min: %+v, want %d", r.Min, tt.min)
			}
			if tt.max == 0 {
				if r.Max != nil {
					t.Fatalf("expected no max, got %d", *r.Max)
				}
			} else if r.Max == nil || *r.Max != tt.max {
				t.Fatalf("unexpected max: %+v, want %d", r.Max, tt.max)
			}
			if r.Currency != tt.currency {
				t.Fatalf("unexpected currency: %s, want %s", r.Currency, tt.currency)
			}
		})
	}
}

func TestExtractSalaryRejectsOutOfBand(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"hourly-sized figures", "Earn $5 - $10 for simple tasks."},
		{"no figures at all", "Competitive salary and great benefits."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r := extractSalary(tt.text, 20000, 2000000); r != nil {
				t.Fatalf("expected nil, got %+v", r)
			}
		})
	}
}
