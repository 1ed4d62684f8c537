package kernel

import (
	"net/mail"
	"strings"
	"time"
)

type Email string

func (e Email) String() string { return string(e) }

// IsValid checks the address parses as a bare RFC 5322 address
func (e Email) IsValid() bool {
	addr, err := mail.ParseAddress(string(e))
	return err == nil && addr.Address == string(e)
}

// Normalize lowercases and trims the address
func (e Email) Normalize() Email {
	return Email(strings.ToLower(strings.TrimSpace(string(e))))
}

type Slug string

func (s Slug) String() string { return string(s) }

// BlobPath is a key inside the blob store (resumes, logos)
type BlobPath string

func (p BlobPath) String() string { return string(p) }
func (p BlobPath) IsEmpty() bool  { return string(p) == "" }

const dateLayout = "2006-01-02"

// Date is a calendar day rendered as YYYY-MM-DD
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
