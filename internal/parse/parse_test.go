package parse

import (
	"testing"

	"github.com/taylorp5/dealwise/internal/model"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"$23,450", 23450, true},
		{"23450.00", 23450, true},
		{"$ 45,990", 45990, true},
		{"$499", 0, false},      // below floor
		{"$250,001", 0, false},  // above ceiling
		{"$250,000", 250000, true},
		{"$500", 500, true},
		{"Call for price", 0, false},
		{"", 0, false},
		{"$399/mo", 0, false},
	}

	for _, c := range cases {
		got, ok := Money(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("Money(%q) = %d, %v; want %d, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestMoney_NeverOutOfRange(t *testing.T) {
	inputs := []string{"$1", "$99", "$400", "$9999999", "$-500", "1e12", "NaN"}
	for _, in := range inputs {
		if got, ok := Money(in); ok && (got < MinPrice || got > MaxPrice) {
			t.Errorf("Money(%q) = %d outside [%d, %d]", in, got, MinPrice, MaxPrice)
		}
	}
}

func TestMileage(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"12,500 miles", 12500, true},
		{"12500 mi", 12500, true},
		{"45k miles on the clock", 45000, true},
		{"89k", 89000, true},
		{"401,000 miles", 0, false}, // above ceiling
		{"400,000 miles", 400000, true},
		{"no numbers here", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		got, ok := Mileage(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("Mileage(%q) = %d, %v; want %d, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCondition(t *testing.T) {
	cases := []struct {
		in   string
		want model.Condition
	}{
		{"New 2025 Honda Civic", model.ConditionNew},
		{"Certified Pre-Owned", model.ConditionCPO},
		{"CPO vehicle", model.ConditionCPO},
		{"Used 2019 Ford F-150", model.ConditionUsed},
		{"Pre-Owned Special", model.ConditionUsed},
		{"Great deal!", model.ConditionUnknown},
		// Priority: certified beats used when both appear and "new" is absent.
		{"Certified Used Vehicle", model.ConditionCPO},
	}

	for _, c := range cases {
		if got := Condition(c.in); got != c.want {
			t.Errorf("Condition(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestVIN(t *testing.T) {
	got, ok := VIN("VIN: 5TFDZ5BN1MX123456 Stock #A1234")
	if !ok || got != "5TFDZ5BN1MX123456" {
		t.Fatalf("VIN = %q, %v", got, ok)
	}

	// Lowercase input is uppercased.
	got, ok = VIN("vin 5tfdz5bn1mx123456")
	if !ok || got != "5TFDZ5BN1MX123456" {
		t.Fatalf("lowercase VIN = %q, %v", got, ok)
	}

	// I, O, Q are not in the VIN alphabet.
	if _, ok := VIN("IIIII5BN1MXOOOQQQ"); ok {
		t.Error("accepted VIN containing I/O/Q")
	}

	// 17 digits is a phone-ish number, not a VIN.
	if _, ok := VIN("12345678901234567"); ok {
		t.Error("accepted all-digit token as VIN")
	}

	if _, ok := VIN("too short"); ok {
		t.Error("accepted short text as VIN")
	}
}

func TestTitle(t *testing.T) {
	tf := Title("Used 2022 Toyota Tundra Limited")
	if tf.Year != 2022 || tf.Make != "Toyota" || tf.Model != "Tundra" || tf.Trim != "Limited" {
		t.Errorf("unexpected fields: %+v", tf)
	}

	tf = Title("2021 Chevy Silverado 1500 (LT Trail Boss)")
	if tf.Make != "Chevrolet" {
		t.Errorf("alias Chevy not canonicalized: %+v", tf)
	}
	if tf.Trim != "LT Trail Boss" {
		t.Errorf("parenthetical trim not extracted: %+v", tf)
	}

	tf = Title("2023 VW Jetta Trim: SEL Premium")
	if tf.Make != "Volkswagen" || tf.Trim != "SEL Premium" {
		t.Errorf("unexpected fields: %+v", tf)
	}

	tf = Title("2020 Jeep Grand Cherokee Laredo")
	if tf.Model != "Grand Cherokee" || tf.Trim != "Laredo" {
		t.Errorf("two-word model not handled: %+v", tf)
	}

	// Years outside the plausible window are ignored.
	tf = Title("Since 1985 — 2019 Honda Accord")
	if tf.Year != 2019 {
		t.Errorf("expected 2019, got %d", tf.Year)
	}

	tf = Title("Browse our inventory")
	if tf.Year != 0 || tf.Make != "" || tf.Model != "" {
		t.Errorf("expected empty fields, got %+v", tf)
	}
}
