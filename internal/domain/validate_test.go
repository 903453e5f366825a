package domain

import "testing"

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("admin@dashboard.com"); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
	if err := ValidateEmail(""); err == nil {
		t.Fatal("empty email accepted")
	}
	if err := ValidateEmail("not-an-email"); err == nil {
		t.Fatal("malformed email accepted")
	}
}

func TestValidateLogin(t *testing.T) {
	if err := ValidateLogin("admin@dashboard.com", "admin123"); err != nil {
		t.Fatalf("valid login rejected: %v", err)
	}
	if err := ValidateLogin("admin@dashboard.com", ""); err == nil {
		t.Fatal("empty password accepted")
	}
}

func TestValidateRegistration(t *testing.T) {
	if err := ValidateRegistration("New Trader", "new@dashboard.com", "secret1"); err != nil {
		t.Fatalf("valid registration rejected: %v", err)
	}
	if err := ValidateRegistration("", "new@dashboard.com", "secret1"); err == nil {
		t.Fatal("empty name accepted")
	}
	if err := ValidateRegistration("New Trader", "new@dashboard.com", "short"); err == nil {
		t.Fatal("short password accepted")
	}
}

func TestContactFormValidate(t *testing.T) {
	valid := ContactForm{Name: "A", Email: "a@b.com", Subject: "s", Message: "m"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	for _, f := range []ContactForm{
		{Email: "a@b.com", Subject: "s", Message: "m"},
		{Name: "A", Email: "nope", Subject: "s", Message: "m"},
		{Name: "A", Email: "a@b.com", Message: "m"},
		{Name: "A", Email: "a@b.com", Subject: "s"},
	} {
		if err := f.Validate(); err == nil {
			t.Fatalf("incomplete form accepted: %+v", f)
		}
	}
}
