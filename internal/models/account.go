package models

// Account is a registered user as persisted in the accounts collection.
// Credential holds the encoded credential hash, never the raw secret.
type Account struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Credential string `json:"credential"`
}

// User is an Account without its credential. It is what sessions hold and
// what callers outside the account store ever see.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// User strips the credential.
func (a Account) User() User {
	return User{ID: a.ID, Name: a.Name, Email: a.Email}
}
