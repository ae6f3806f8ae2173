package forms

import "strings"

type LoginForm struct {
	EmailOrPhone string `json:"email_or_phone_number" validate:"required,email_or_phone"`
	Password     string `json:"password" validate:"required,max=30"`
}

// Validate normalizes and checks the form. Email input is lowercased to
// match how the backend stores it.
func (f *LoginForm) Validate() error {
	f.EmailOrPhone = strings.TrimSpace(f.EmailOrPhone)
	if strings.Contains(f.EmailOrPhone, "@") {
		f.EmailOrPhone = strings.ToLower(f.EmailOrPhone)
	}
	return check(f)
}
