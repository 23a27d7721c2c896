package ledger

// Entry is a single debit or credit line of a transfer. Amounts are decimal
// strings, matching the ledger's wire format.
type Entry struct {
	Account    string `json:"account"`
	Amount     string `json:"amount"`
	Authorized bool   `json:"authorized,omitempty"`
}

// Transfer is the ledger's atomic unit of value movement. It is immutable once
// submitted; the ledger owns its lifecycle.
type Transfer struct {
	ID        string  `json:"id,omitempty"`
	Debits    []Entry `json:"debits"`
	Credits   []Entry `json:"credits"`
	ExpiresAt string  `json:"expires_at,omitempty"`
	State     string  `json:"state,omitempty"`
}

// Account is the ledger's representation of an account. The password is only
// present on creation requests.
type Account struct {
	Name     string `json:"name"`
	Balance  string `json:"balance"`
	Password string `json:"password,omitempty"`
}

// Info describes the metadata document served at the ledger's base URI.
type Info struct {
	CurrencyCode   string `json:"currency_code"`
	CurrencySymbol string `json:"currency_symbol"`
	Precision      int    `json:"precision"`
	Scale          int    `json:"scale"`
}

// Subscription is the registration body for transfer notifications.
type Subscription struct {
	Owner   string `json:"owner"`
	Event   string `json:"event"`
	Subject string `json:"subject"`
	Target  string `json:"target"`
}

// ErrorBody is the ledger's JSON error envelope.
type ErrorBody struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Credentials authenticate a ledger call, either as an end user or as the
// configured administrator.
type Credentials struct {
	Name string
	Pass string
}
