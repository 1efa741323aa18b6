package vcard

import "strings"

// Phone is a telephone entry; Cell marks mobile numbers, rendered with a
// TYPE=CELL parameter.
type Phone struct {
	Number string
	Cell   bool
}

// Property is an arbitrary additional vCard property, kept ordered so cards
// serialize deterministically.
type Property struct {
	Name  string
	Value string
}

// Card is a minimal vCard 3.0 contact record. Only the pieces the sync
// mapping can produce are modelled.
type Card struct {
	FormattedName string
	Emails        []string
	Phones        []Phone
	Extra         []Property
}

// AddEmail appends a non-empty email address.
func (c *Card) AddEmail(email string) {
	if strings.TrimSpace(email) != "" {
		c.Emails = append(c.Emails, email)
	}
}

// AddPhone appends a non-empty phone number.
func (c *Card) AddPhone(number string, cell bool) {
	if strings.TrimSpace(number) != "" {
		c.Phones = append(c.Phones, Phone{Number: number, Cell: cell})
	}
}

// AddExtra appends an additional property when its value is non-empty.
func (c *Card) AddExtra(name, value string) {
	if strings.TrimSpace(value) != "" {
		c.Extra = append(c.Extra, Property{Name: name, Value: value})
	}
}

// Serialize renders the card as a vCard 3.0 block with CRLF line endings.
func (c Card) Serialize() []byte {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCARD")
	writeLine(&b, "VERSION:3.0")
	writeLine(&b, "FN:"+EscapeText(c.FormattedName))
	for _, email := range c.Emails {
		writeLine(&b, "EMAIL:"+EscapeText(email))
	}
	for _, phone := range c.Phones {
		if phone.Cell {
			writeLine(&b, "TEL;TYPE=CELL:"+EscapeText(phone.Number))
			continue
		}
		writeLine(&b, "TEL:"+EscapeText(phone.Number))
	}
	for _, prop := range c.Extra {
		writeLine(&b, strings.ToUpper(prop.Name)+":"+EscapeText(prop.Value))
	}
	writeLine(&b, "END:VCARD")

	return []byte(b.String())
}

// EscapeText applies vCard 3.0 text escaping: backslash, comma, and
// semicolon are backslash-escaped, newlines become literal \n, carriage
// returns are dropped.
func EscapeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case ',':
			b.WriteString(`\,`)
		case ';':
			b.WriteString(`\;`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}
