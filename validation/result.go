// Package validation holds the field rules applied to signup, login and
// profile forms before anything is sent to a store.
package validation

// Result is the verdict for one field. Message is set only on failure.
type Result struct {
	Successful bool   `json:"successful"`
	Message    string `json:"message,omitempty"`
}

func ok() Result { return Result{Successful: true} }

func fail(message string) Result { return Result{Message: message} }

// Failures collects the failed fields of a form, keyed by field name.
type Failures map[string]Result

func (f Failures) add(field string, r Result) {
	if !r.Successful {
		f[field] = r
	}
}

// Valid reports whether no field failed.
func (f Failures) Valid() bool { return len(f) == 0 }
