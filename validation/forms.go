package validation

// Field names used as keys in Failures.
const (
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldStreet          = "street"
	FieldCity            = "city"
	FieldZipCode         = "zip_code"
)

// SignupForm is everything the signup screen submits.
type SignupForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// AddressForm is the editable part of a profile.
type AddressForm struct {
	FirstName string
	LastName  string
	Street    string
	City      string
	ZipCode   string
}

// ValidateSignup runs every signup rule and returns the failed fields.
func ValidateSignup(f SignupForm) Failures {
	failures := Failures{}
	failures.add(FieldFirstName, ValidateName(f.FirstName))
	failures.add(FieldLastName, ValidateName(f.LastName))
	failures.add(FieldEmail, ValidateEmail(f.Email))
	failures.add(FieldPassword, ValidateSignupPassword(f.Password))
	failures.add(FieldConfirmPassword, ValidateConfirmPassword(f.Password, f.ConfirmPassword))
	return failures
}

// ValidateLogin checks the login form.
func ValidateLogin(email, password string) Failures {
	failures := Failures{}
	failures.add(FieldEmail, ValidateEmail(email))
	failures.add(FieldPassword, ValidateLoginPassword(password))
	return failures
}

// ValidateAddress runs the profile rules and returns the failed fields.
func ValidateAddress(f AddressForm) Failures {
	failures := Failures{}
	failures.add(FieldFirstName, ValidateName(f.FirstName))
	failures.add(FieldLastName, ValidateName(f.LastName))
	failures.add(FieldStreet, ValidateStreet(f.Street))
	failures.add(FieldCity, ValidateCity(f.City))
	failures.add(FieldZipCode, ValidateZipCode(f.ZipCode))
	return failures
}
