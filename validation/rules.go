package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateName checks a first or last name.
func ValidateName(name string) Result {
	switch {
	case isBlank(name):
		return fail(MsgFieldEmpty)
	case strings.IndexFunc(name, unicode.IsDigit) >= 0:
		return fail(MsgContainsDigits)
	case strings.ContainsAny(name, NameSpecialChars):
		return fail(MsgContainsSpecialChars)
	}
	return ok()
}

// ValidateEmail only requires a non-blank value; the auth provider owns the
// format check.
func ValidateEmail(email string) Result {
	if isBlank(email) {
		return fail(MsgEmailEmpty)
	}
	return ok()
}

func ValidateLoginPassword(password string) Result {
	if isBlank(password) {
		return fail(MsgPasswordEmpty)
	}
	return ok()
}

// ValidateSignupPassword enforces the password policy for new accounts.
func ValidateSignupPassword(password string) Result {
	switch {
	case isBlank(password):
		return fail(MsgPasswordEmpty)
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return fail(MsgPasswordTooShort)
	case strings.IndexFunc(password, unicode.IsDigit) < 0:
		return fail(MsgPasswordNeedsDigit)
	case strings.IndexFunc(password, unicode.IsUpper) < 0:
		return fail(MsgPasswordNeedsCapital)
	case !strings.ContainsAny(password, PasswordSpecialChars):
		return fail(MsgPasswordNeedsSpecial)
	}
	return ok()
}

func ValidateConfirmPassword(password, confirmPassword string) Result {
	if password != confirmPassword {
		return fail(MsgConfirmPasswordMismatch)
	}
	return ok()
}

// ValidateStreet requires a street name and a house number.
func ValidateStreet(street string) Result {
	switch {
	case isBlank(street):
		return fail(MsgStreetEmpty)
	case strings.IndexFunc(street, unicode.IsLetter) < 0:
		return fail(MsgNeedsLetter)
	case strings.IndexFunc(street, unicode.IsDigit) < 0:
		return fail(MsgNeedsDigit)
	case strings.ContainsAny(street, StreetSpecialChars):
		return fail(MsgSpecialChars)
	}
	return ok()
}

func ValidateCity(city string) Result {
	switch {
	case isBlank(city):
		return fail(MsgCityEmpty)
	case strings.IndexFunc(city, unicode.IsLetter) < 0:
		return fail(MsgNeedsLetter)
	case strings.IndexFunc(city, unicode.IsDigit) >= 0:
		return fail(MsgContainsDigits)
	case strings.ContainsAny(city, CitySpecialChars):
		return fail(MsgSpecialChars)
	}
	return ok()
}

// ValidateZipCode accepts the DD-DDD postal code shape.
func ValidateZipCode(zip string) Result {
	switch {
	case isBlank(zip):
		return fail(MsgZipCodeEmpty)
	case len(zip) != 6:
		return fail(MsgZipCodeBadFormat)
	case strings.IndexFunc(zip, unicode.IsLetter) >= 0:
		return fail(MsgZipCodeBadFormat)
	case strings.ContainsAny(zip, ZipSpecialChars):
		return fail(MsgSpecialChars)
	case zip[2] != '-':
		return fail(MsgZipCodeBadFormat)
	}
	for _, i := range []int{0, 1, 3, 4, 5} {
		if zip[i] < '0' || zip[i] > '9' {
			return fail(MsgZipCodeBadFormat)
		}
	}
	return ok()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
