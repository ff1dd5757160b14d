// Package command maps tokenized input lines onto address book
// operations. Handlers return a reply string or a typed failure; the
// dispatch boundary renders failures to their message text, so no error
// ever escapes to the interaction loop.
package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/smileynet/rolodex/internal/book"
)

// Kind identifies a recognized command keyword.
type Kind string

// Recognized command kinds. KindUnknown covers everything else and
// dispatches to the invalid-command reply.
const (
	KindAdd          Kind = "add"
	KindChange       Kind = "change"
	KindPhone        Kind = "phone"
	KindAll          Kind = "all"
	KindAddBirthday  Kind = "add-birthday"
	KindShowBirthday Kind = "show-birthday"
	KindBirthdays    Kind = "birthdays"
	KindHello        Kind = "hello"
	KindUnknown      Kind = ""
)

// Fixed reply strings shared by handlers.
const (
	replyContactAdded     = "Contact added."
	replyPhoneAppended    = "Phone number added to the existing contact."
	replyPhoneUpdated     = "Contact phone updated."
	replyOldPhoneNotFound = "Old phone number not found."
	replyContactNotFound  = "Contact not found."
	replyNoContacts       = "No contacts saved."
	replyBirthdayAdded    = "Birthday added to the contact."
	replyNoBirthday       = "Birthday not found for this contact."
	replyNoBirthdays      = "No birthdays next week."
	replyBirthdaysHeader  = "Birthdays next week:"
	replyHello            = "How can I help you?"
	replyInvalidCommand   = "Invalid command."
)

// MissingArgumentError reports a command invoked with fewer arguments
// than its arity requires. Its Error text is the user-facing reply.
type MissingArgumentError struct {
	Kind Kind
}

func (e *MissingArgumentError) Error() string {
	switch e.Kind {
	case KindAdd:
		return "Error: Missing name or phone number."
	case KindChange:
		return "Error: Missing name, old phone, or new phone number."
	case KindAddBirthday:
		return "Error: Missing name or birthday."
	default:
		return "Error: Missing name."
	}
}

// ParseKind maps a keyword (case-insensitive) to its command Kind.
func ParseKind(keyword string) Kind {
	switch k := Kind(strings.ToLower(keyword)); k {
	case KindAdd, KindChange, KindPhone, KindAll,
		KindAddBirthday, KindShowBirthday, KindBirthdays, KindHello:
		return k
	default:
		return KindUnknown
	}
}

// Parse tokenizes a raw input line on whitespace into a command kind and
// its positional arguments. An empty line yields KindUnknown and no
// arguments.
func Parse(line string) (Kind, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return KindUnknown, nil
	}
	return ParseKind(fields[0]), fields[1:]
}

// Dispatcher routes parsed commands to their handlers over a single
// Book. It is stateless per call apart from the book it mutates.
type Dispatcher struct {
	book       *book.Book
	now        func() time.Time
	windowDays int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock overrides the time source for the birthdays query.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// WithWindowDays overrides the lookahead window for the birthdays query.
func WithWindowDays(days int) Option {
	return func(d *Dispatcher) {
		d.windowDays = days
	}
}

// NewDispatcher creates a Dispatcher over b with a 7-day birthday window
// and the wall clock.
func NewDispatcher(b *book.Book, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		book:       b,
		now:        time.Now,
		windowDays: 7,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Book returns the address book the dispatcher operates on.
func (d *Dispatcher) Book() *book.Book {
	return d.book
}

// Dispatch executes the command and always returns reply text. Handler
// failures (validation, missing arguments) are rendered to their message
// rather than propagated.
func (d *Dispatcher) Dispatch(kind Kind, args []string) string {
	reply, err := d.dispatch(kind, args)
	if err != nil {
		return err.Error()
	}
	return reply
}

// dispatch selects the handler for kind. Arguments beyond a handler's
// arity are ignored.
func (d *Dispatcher) dispatch(kind Kind, args []string) (string, error) {
	switch kind {
	case KindAdd:
		return d.addContact(args)
	case KindChange:
		return d.changeContact(args)
	case KindPhone:
		return d.showPhone(args)
	case KindAll:
		return d.showAll()
	case KindAddBirthday:
		return d.addBirthday(args)
	case KindShowBirthday:
		return d.showBirthday(args)
	case KindBirthdays:
		return d.showBirthdays()
	case KindHello:
		return replyHello, nil
	default:
		return replyInvalidCommand, nil
	}
}

// addContact appends a phone to an existing contact, or creates the
// contact when the name is new.
func (d *Dispatcher) addContact(args []string) (string, error) {
	if len(args) < 2 {
		return "", &MissingArgumentError{Kind: KindAdd}
	}
	name, phone := args[0], args[1]

	if rec, ok := d.book.Get(name); ok {
		if err := rec.AddPhone(phone); err != nil {
			return "", err
		}
		return replyPhoneAppended, nil
	}

	rec := book.NewRecord(name)
	if err := rec.AddPhone(phone); err != nil {
		return "", err
	}
	d.book.Add(rec)
	return replyContactAdded, nil
}

// changeContact edits a phone on an existing contact, distinguishing a
// missing contact from a missing old phone.
func (d *Dispatcher) changeContact(args []string) (string, error) {
	if len(args) < 3 {
		return "", &MissingArgumentError{Kind: KindChange}
	}
	name, oldPhone, newPhone := args[0], args[1], args[2]

	rec, ok := d.book.Get(name)
	if !ok {
		return replyContactNotFound, nil
	}
	found, err := rec.EditPhone(oldPhone, newPhone)
	if err != nil {
		return "", err
	}
	if !found {
		return replyOldPhoneNotFound, nil
	}
	return replyPhoneUpdated, nil
}

func (d *Dispatcher) showPhone(args []string) (string, error) {
	if len(args) < 1 {
		return "", &MissingArgumentError{Kind: KindPhone}
	}
	rec, ok := d.book.Get(args[0])
	if !ok {
		return replyContactNotFound, nil
	}
	return rec.String(), nil
}

func (d *Dispatcher) showAll() (string, error) {
	if d.book.Len() == 0 {
		return replyNoContacts, nil
	}
	var lines []string
	for _, rec := range d.book.Records() {
		lines = append(lines, rec.String())
	}
	return strings.Join(lines, "\n"), nil
}

// addBirthday sets a birthday on an existing contact only; unlike add,
// it never creates one.
func (d *Dispatcher) addBirthday(args []string) (string, error) {
	if len(args) < 2 {
		return "", &MissingArgumentError{Kind: KindAddBirthday}
	}
	name, birthday := args[0], args[1]

	rec, ok := d.book.Get(name)
	if !ok {
		return replyContactNotFound, nil
	}
	if err := rec.SetBirthday(birthday); err != nil {
		return "", err
	}
	return replyBirthdayAdded, nil
}

// showBirthday replies with the birthday; a missing contact and a
// contact without a birthday produce the same reply.
func (d *Dispatcher) showBirthday(args []string) (string, error) {
	if len(args) < 1 {
		return "", &MissingArgumentError{Kind: KindShowBirthday}
	}
	name := args[0]

	if rec, ok := d.book.Get(name); ok {
		if bd, set := rec.Birthday(); set {
			return fmt.Sprintf("Birthday of %s: %s", name, bd), nil
		}
	}
	return replyNoBirthday, nil
}

func (d *Dispatcher) showBirthdays() (string, error) {
	names, err := d.book.BirthdaysWithin(d.now(), d.windowDays)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return replyNoBirthdays, nil
	}
	return replyBirthdaysHeader + "\n" + strings.Join(names, "\n"), nil
}
