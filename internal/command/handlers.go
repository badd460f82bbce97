package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smileynet/assistant/internal/contact"
	"github.com/smileynet/assistant/internal/field"
)

func defaultHandlers() map[string]handler {
	return map[string]handler{
		"hello":         hello,
		"help":          showHelp,
		"add":           addContact,
		"change":        changePhone,
		"remove-phone":  removePhone,
		"phone":         showPhone,
		"all":           showAll,
		"search":        searchContact,
		"delete":        deleteContact,
		"add-birthday":  addBirthday,
		"show-birthday": showBirthday,
		"birthdays":     upcomingBirthdays,
		"add-note":      addNote,
		"notes":         showNotes,
		"search-notes":  searchNotes,
		"delete-note":   deleteNote,
	}
}

func hello(*Session, []string) ([]Line, error) {
	return []Line{info("How can I help you?")}, nil
}

func showHelp(s *Session, _ []string) ([]Line, error) {
	if s.help == "" {
		return []Line{info("Available commands: " + strings.Join(s.commandNames(), ", "))}, nil
	}
	return []Line{info(strings.TrimRight(s.help, "\n"))}, nil
}

// addContact creates or updates a contact. Each token after the name is
// classified by shape: digits are phones, local@domain.tld is an email,
// DD.MM.YYYY is a birthday, and anything else is the address.
func addContact(s *Session, args []string) ([]Line, error) {
	if len(args) < 1 {
		return nil, usageError("Please provide a name.")
	}
	name := args[0]
	if err := field.ValidateName(name); err != nil {
		return nil, err
	}

	var (
		phones                   []string
		lines                    []Line
		email, address, birthday string
	)
	for _, arg := range args[1:] {
		switch {
		case isDigits(arg):
			if len(arg) == 10 {
				phones = append(phones, arg)
			} else {
				lines = append(lines, failure(fmt.Sprintf("Error adding phone %s: Phone number must be 10 digits.", arg)))
			}
		case field.LooksLikeEmail(arg):
			email = arg
		case field.LooksLikeDate(arg):
			birthday = arg
		default:
			address = arg
		}
	}

	// Validate before touching the book so a bad field leaves it unchanged.
	if birthday != "" {
		if _, err := field.ParseBirthday(birthday); err != nil {
			return lines, err
		}
	}

	record, err := s.books.Contacts.Find(name)
	message := "Contact updated."
	if err != nil {
		if record, err = contact.NewRecord(name); err != nil {
			return lines, err
		}
		s.books.Contacts.Add(record)
		message = "Contact added."
	}

	for _, p := range phones {
		outcome, err := record.AddPhone(p)
		switch {
		case err != nil:
			lines = append(lines, failure(fmt.Sprintf("Error adding phone %s: %v", p, err)))
		case outcome == contact.PhoneDuplicate:
			lines = append(lines, warning(fmt.Sprintf("Phone %s already exists for %s.", p, name)))
		default:
			lines = append(lines, success(fmt.Sprintf("Phone %s added to %s.", p, name)))
		}
	}
	if email != "" {
		if err := record.SetEmail(email); err != nil {
			return lines, err
		}
	}
	if address != "" {
		if err := record.SetAddress(address); err != nil {
			return lines, err
		}
	}
	if birthday != "" {
		if err := record.SetBirthday(birthday); err != nil {
			return lines, err
		}
	}

	return append(lines, success(message+" "+name)), nil
}

func changePhone(s *Session, args []string) ([]Line, error) {
	if len(args) != 3 {
		return nil, usageError("Please provide the contact name, old phone number, and new phone number.")
	}
	name, oldPhone, newPhone := args[0], args[1], args[2]
	r, err := s.books.Contacts.Find(name)
	if err != nil {
		return nil, err
	}
	if err := r.EditPhone(oldPhone, newPhone); err != nil {
		return nil, err
	}
	return []Line{success(fmt.Sprintf("Phone %s changed to %s for %s.", oldPhone, newPhone, name))}, nil
}

func removePhone(s *Session, args []string) ([]Line, error) {
	if len(args) != 2 {
		return nil, usageError("Please provide the contact name and the phone number to remove.")
	}
	r, err := s.books.Contacts.Find(args[0])
	if err != nil {
		return nil, err
	}
	if err := r.RemovePhone(args[1]); err != nil {
		return nil, err
	}
	return []Line{success(fmt.Sprintf("Phone %s removed from %s.", args[1], args[0]))}, nil
}

func showPhone(s *Session, args []string) ([]Line, error) {
	if len(args) != 1 {
		return nil, usageError("Please provide exactly one contact name.")
	}
	name := args[0]
	r, err := s.books.Contacts.Find(name)
	if err != nil {
		return nil, err
	}
	phones := r.Phones()
	if len(phones) == 0 {
		return []Line{info(fmt.Sprintf("No phone numbers found for %s.", name))}, nil
	}
	parts := make([]string, len(phones))
	for i, p := range phones {
		parts[i] = p.String()
	}
	return []Line{info(fmt.Sprintf("%s's numbers are: %s", name, strings.Join(parts, ", ")))}, nil
}

func showAll(s *Session, _ []string) ([]Line, error) {
	records := s.books.Contacts.Records()
	if len(records) == 0 {
		return []Line{info("No contacts saved.")}, nil
	}
	lines := make([]Line, len(records))
	for i, r := range records {
		lines[i] = info(r.String())
	}
	return lines, nil
}

func searchContact(s *Session, args []string) ([]Line, error) {
	if len(args) != 1 {
		return nil, usageError("Please provide exactly one contact name for the search.")
	}
	r, err := s.books.Contacts.Find(args[0])
	if err != nil {
		return nil, err
	}
	return []Line{info(r.String())}, nil
}

func deleteContact(s *Session, args []string) ([]Line, error) {
	if len(args) != 1 {
		return nil, usageError("Please provide exactly one contact name to delete.")
	}
	if err := s.books.Contacts.Delete(args[0]); err != nil {
		return nil, err
	}
	return []Line{success(fmt.Sprintf("Contact %s deleted successfully.", args[0]))}, nil
}

func addBirthday(s *Session, args []string) ([]Line, error) {
	if len(args) != 2 {
		return nil, usageError("Please provide the contact name and the birthday in format DD.MM.YYYY.")
	}
	name, birthday := args[0], args[1]
	r, err := s.books.Contacts.Find(name)
	if err != nil {
		return nil, err
	}
	if err := r.SetBirthday(birthday); err != nil {
		return nil, err
	}
	return []Line{success(fmt.Sprintf("Birthday %s added to %s.", birthday, name))}, nil
}

func showBirthday(s *Session, args []string) ([]Line, error) {
	if len(args) != 1 {
		return nil, usageError("Please provide exactly one contact name.")
	}
	name := args[0]
	r, err := s.books.Contacts.Find(name)
	if err != nil {
		return nil, err
	}
	b, ok := r.Birthday()
	if !ok {
		return []Line{info(fmt.Sprintf("No birthday found for %s.", name))}, nil
	}
	return []Line{info(fmt.Sprintf("%s's birthday is on %s.", name, b))}, nil
}

func upcomingBirthdays(s *Session, args []string) ([]Line, error) {
	days := s.window
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return nil, usageError(fmt.Sprintf("Number of days must be a non-negative integer, got %q.", args[0]))
		}
		days = n
	default:
		return nil, usageError("Please provide the number of days to look ahead for birthdays.")
	}

	names := s.books.Contacts.UpcomingBirthdays(s.now(), days)
	if len(names) == 0 {
		return []Line{info("No upcoming birthdays.")}, nil
	}
	return []Line{info("Upcoming birthdays: " + strings.Join(names, ", "))}, nil
}

func addNote(s *Session, args []string) ([]Line, error) {
	if len(args) < 1 {
		return nil, usageError("Please provide the note text.")
	}
	n := s.books.Notes.Add(strings.Join(args, " "))
	return []Line{success(fmt.Sprintf("Note %d added: %s", n.ID, n.Text))}, nil
}

func showNotes(s *Session, _ []string) ([]Line, error) {
	notes := s.books.Notes.Notes()
	if len(notes) == 0 {
		return []Line{info("No notes saved.")}, nil
	}
	lines := make([]Line, len(notes))
	for i, n := range notes {
		lines[i] = info(fmt.Sprintf("%d: %s", n.ID, n.Text))
	}
	return lines, nil
}

func searchNotes(s *Session, args []string) ([]Line, error) {
	if len(args) < 1 {
		return nil, usageError("Please provide the search text.")
	}
	results := s.books.Notes.Search(strings.Join(args, " "))
	if len(results) == 0 {
		return []Line{info("No notes found.")}, nil
	}
	lines := make([]Line, len(results))
	for i, n := range results {
		lines[i] = info(fmt.Sprintf("%d: %s", n.ID, n.Text))
	}
	return lines, nil
}

func deleteNote(s *Session, args []string) ([]Line, error) {
	if len(args) != 1 {
		return nil, usageError("Please provide the note ID to delete.")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, usageError(fmt.Sprintf("Note ID must be a number, got %q.", args[0]))
	}
	if err := s.books.Notes.Delete(id); err != nil {
		return nil, err
	}
	return []Line{success(fmt.Sprintf("Note %d deleted successfully.", id))}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
