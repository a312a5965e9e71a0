package validation

// Messages returned by the rules. Clients match on these to localize.
const (
	MsgFieldEmpty           = "This field cannot be empty"
	MsgContainsDigits       = "This field cannot contain digits"
	MsgContainsSpecialChars = "This field cannot contain special characters"

	MsgEmailEmpty = "Email cannot be empty"

	MsgPasswordEmpty           = "Password cannot be empty"
	MsgPasswordTooShort        = "Password must be at least 8 characters long"
	MsgPasswordNeedsDigit      = "Password must contain at least one digit"
	MsgPasswordNeedsCapital    = "Password must contain at least one capital letter"
	MsgPasswordNeedsSpecial    = "Password must contain at least one special character"
	MsgConfirmPasswordMismatch = "Passwords do not match"

	MsgStreetEmpty  = "Street cannot be empty"
	MsgCityEmpty    = "City cannot be empty"
	MsgNeedsLetter  = "This field must contain at least one letter"
	MsgNeedsDigit   = "This field must contain at least one digit"
	MsgSpecialChars = "This field contains forbidden special characters"

	MsgZipCodeEmpty     = "Zip code cannot be empty"
	MsgZipCodeBadFormat = "Zip code must have the format 00-000"
)

// MinPasswordLength is the shortest signup password accepted.
const MinPasswordLength = 8

// Forbidden or required punctuation per field.
const (
	// NameSpecialChars is forbidden in first and last names. Hyphens are allowed.
	NameSpecialChars = "!@#$%^&*()_+=[]{}|\\;:'\",.<>/?`~"
	// CitySpecialChars is forbidden in city names. Hyphens are allowed.
	CitySpecialChars = NameSpecialChars
	// StreetSpecialChars is forbidden in streets; / . , - stay allowed for
	// house and flat numbers.
	StreetSpecialChars = "!@#$%^&*()_+=[]{}|\\;:'\"<>?`~"
	// ZipSpecialChars is forbidden in zip codes. The separator '-' is checked
	// positionally instead.
	ZipSpecialChars = NameSpecialChars
	// PasswordSpecialChars must appear at least once in a signup password.
	PasswordSpecialChars = "!@#$%^&*()_+-=[]{}|\\;:'\",.<>/?`~"
)
