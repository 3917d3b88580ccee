package validate

import (
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"posto.centro@tanquecheio.com.br",
		"a@b.co",
	}
	for _, s := range valid {
		if !Email(s) {
			t.Errorf("Email(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@missing-local.com",
		"missing-domain@",
		"no-tld@domain",
		"spaces in@domain.com",
		"two@@domain.com",
		strings.Repeat("a", 250) + "@x.com", // over 254
	}
	for _, s := range invalid {
		if Email(s) {
			t.Errorf("Email(%q) = true, want false", s)
		}
	}
}

func TestCNPJ(t *testing.T) {
	if !CNPJ("12.345.678/0001-95") {
		t.Error("formatted 14-digit CNPJ rejected")
	}
	if !CNPJ("12345678000195") {
		t.Error("bare 14-digit CNPJ rejected")
	}
	if CNPJ("1234567800019") {
		t.Error("13-digit CNPJ accepted")
	}
	if CNPJ("123456780001955") {
		t.Error("15-digit CNPJ accepted")
	}
	if CNPJ("") {
		t.Error("empty CNPJ accepted")
	}
}

func TestPasswordStrengthAllViolations(t *testing.T) {
	res := PasswordStrength("abc")
	if res.Valid {
		t.Fatal("weak password reported valid")
	}
	if len(res.Violations) != 4 {
		t.Fatalf("expected 4 violations for %q, got %d: %v", "abc", len(res.Violations), res.Violations)
	}

	res = PasswordStrength("")
	if len(res.Violations) != 5 {
		t.Fatalf("expected all 5 violations for empty password, got %d: %v", len(res.Violations), res.Violations)
	}
}

func TestPasswordStrengthValid(t *testing.T) {
	res := PasswordStrength("Abcdef1!")
	if !res.Valid {
		t.Fatalf("expected valid, got violations %v", res.Violations)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("valid result carries violations: %v", res.Violations)
	}
}

func TestPasswordStrengthViolationOrder(t *testing.T) {
	// Rules report in fixed order: length, upper, lower, digit, symbol.
	res := PasswordStrength("abcdefgh")
	want := []string{
		"password must contain an uppercase letter",
		"password must contain a digit",
		"password must contain a special character",
	}
	if len(res.Violations) != len(want) {
		t.Fatalf("got %v", res.Violations)
	}
	for i := range want {
		if res.Violations[i] != want[i] {
			t.Fatalf("violation %d = %q, want %q", i, res.Violations[i], want[i])
		}
	}
}

func TestPasswordStrengthSingleRule(t *testing.T) {
	res := PasswordStrength("Abcdefg1")
	if len(res.Violations) != 1 || res.Violations[0] != "password must contain a special character" {
		t.Fatalf("got %v", res.Violations)
	}
}
