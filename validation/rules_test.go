package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yashrajoria/shop-backend/validation"
)

func success() validation.Result { return validation.Result{Successful: true} }

func failure(msg string) validation.Result { return validation.Result{Message: msg} }

func TestValidateName(t *testing.T) {
	cases := map[string]validation.Result{
		"":           failure(validation.MsgFieldEmpty),
		"   ":        failure(validation.MsgFieldEmpty),
		"J0hn":       failure(validation.MsgContainsDigits),
		"Jo#n":       failure(validation.MsgContainsSpecialChars),
		"John.":      failure(validation.MsgContainsSpecialChars),
		"John":       success(),
		"Anne-Marie": success(),
		"Zoë":        success(),
	}
	for input, want := range cases {
		assert.Equal(t, want, validation.ValidateName(input), "input %q", input)
	}
}

func TestValidateName_DigitCheckedBeforeSpecialChars(t *testing.T) {
	assert.Equal(t, failure(validation.MsgContainsDigits), validation.ValidateName("J0#n"))
}

func TestValidateEmailAndLoginPassword(t *testing.T) {
	assert.Equal(t, failure(validation.MsgEmailEmpty), validation.ValidateEmail(""))
	assert.Equal(t, success(), validation.ValidateEmail("not-even-an-address"))

	assert.Equal(t, failure(validation.MsgPasswordEmpty), validation.ValidateLoginPassword(" "))
	assert.Equal(t, success(), validation.ValidateLoginPassword("x"))
}

func TestValidateSignupPassword(t *testing.T) {
	cases := map[string]validation.Result{
		"":          failure(validation.MsgPasswordEmpty),
		"Qw1+":      failure(validation.MsgPasswordTooShort),
		"Qwertyui+": failure(validation.MsgPasswordNeedsDigit),
		"qwerty1+":  failure(validation.MsgPasswordNeedsCapital),
		"Qwerty12":  failure(validation.MsgPasswordNeedsSpecial),
		"Qwerty1+":  success(),
		"Qwerty1-":  success(),
	}
	for input, want := range cases {
		assert.Equal(t, want, validation.ValidateSignupPassword(input), "input %q", input)
	}
}

func TestValidateConfirmPassword(t *testing.T) {
	assert.Equal(t, failure(validation.MsgConfirmPasswordMismatch), validation.ValidateConfirmPassword("Qwerty1+", "Qwerty1"))
	assert.Equal(t, success(), validation.ValidateConfirmPassword("Qwerty1+", "Qwerty1+"))
}

func TestValidateStreet(t *testing.T) {
	cases := map[string]validation.Result{
		"":              failure(validation.MsgStreetEmpty),
		"123":           failure(validation.MsgNeedsLetter),
		"Main":          failure(validation.MsgNeedsDigit),
		"Main 1#":       failure(validation.MsgSpecialChars),
		"Main St. 12/4": success(),
		"Długa 5, m-3":  success(),
	}
	for input, want := range cases {
		assert.Equal(t, want, validation.ValidateStreet(input), "input %q", input)
	}
}

func TestValidateCity(t *testing.T) {
	cases := map[string]validation.Result{
		"":              failure(validation.MsgCityEmpty),
		"123":           failure(validation.MsgNeedsLetter),
		"Krak0w":        failure(validation.MsgContainsDigits),
		"Krak@w":        failure(validation.MsgSpecialChars),
		"Kraków":        success(),
		"Bielsko-Biała": success(),
	}
	for input, want := range cases {
		assert.Equal(t, want, validation.ValidateCity(input), "input %q", input)
	}
}

func TestValidateZipCode(t *testing.T) {
	cases := map[string]validation.Result{
		"12-345":  success(),
		"":        failure(validation.MsgZipCodeEmpty),
		"1234567": failure(validation.MsgZipCodeBadFormat),
		"12-34":   failure(validation.MsgZipCodeBadFormat),
		"12a345":  failure(validation.MsgZipCodeBadFormat),
		"12+345":  failure(validation.MsgSpecialChars),
		"123456":  failure(validation.MsgZipCodeBadFormat),
		"1--345":  failure(validation.MsgZipCodeBadFormat),
	}
	for input, want := range cases {
		assert.Equal(t, want, validation.ValidateZipCode(input), "input %q", input)
	}
}

func TestValidateSignup(t *testing.T) {
	failures := validation.ValidateSignup(validation.SignupForm{
		FirstName:       "Jan",
		LastName:        "K0walski",
		Email:           "",
		Password:        "Qwerty1+",
		ConfirmPassword: "Qwerty1",
	})

	assert.False(t, failures.Valid())
	assert.Len(t, failures, 3)
	assert.Equal(t, validation.MsgContainsDigits, failures[validation.FieldLastName].Message)
	assert.Equal(t, validation.MsgEmailEmpty, failures[validation.FieldEmail].Message)
	assert.Equal(t, validation.MsgConfirmPasswordMismatch, failures[validation.FieldConfirmPassword].Message)
}

func TestValidateAddress_Valid(t *testing.T) {
	failures := validation.ValidateAddress(validation.AddressForm{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Street:    "Floriańska 15",
		City:      "Kraków",
		ZipCode:   "31-019",
	})
	assert.True(t, failures.Valid())
}

func TestValidateLogin(t *testing.T) {
	failures := validation.ValidateLogin("jan@example.com", "")
	assert.Len(t, failures, 1)
	assert.Equal(t, validation.MsgPasswordEmpty, failures[validation.FieldPassword].Message)
}
