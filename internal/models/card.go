package models

import (
	"strings"
	"time"
)

// CandidateCardPrefix marks card ids synthesized from candidate records
const CandidateCardPrefix = "candidate-"

// NoJobTitle is shown on candidate-derived cards without a job posting
const NoJobTitle = "Keine Stelle"

// CardKind tells which source schema a card was built from
type CardKind int

const (
	KindApplication CardKind = iota // Per-job application with an explicit stage
	KindCandidate                   // Practice-wide candidate with a status enum
)

// String returns the kind name used in logs and JSON output
func (k CardKind) String() string {
	switch k {
	case KindApplication:
		return "application"
	case KindCandidate:
		return "candidate"
	default:
		return "unknown"
	}
}

// Card is the normalized read model of one candidate-in-process.
// Kind discriminates the variant: application cards persist Stage,
// candidate cards persist Status.
type Card struct {
	ID        string
	Kind      CardKind
	Stage     string // Stage.Name the card renders in
	Status    string // Raw source status, kept for round-trip writes
	AppliedAt string
	Candidate CandidateRef
	Job       *JobRef // nil when the source carried no job
}

// CandidateRef holds the denormalized candidate fields shown on a card
type CandidateRef struct {
	ID                string
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	DateOfBirth       string
	CurrentPosition   string
	Rating            float64
	ImageURL          string
	Documents         []Document
	Notes             string
	SalaryExpectation *float64
	WeeklyHours       *float64
}

// JobRef is a lightweight reference to a job posting
type JobRef struct {
	ID         string
	Title      string
	Department string
}

// CandidateCardID builds the card id for a candidate-derived card
func CandidateCardID(candidateID string) string {
	return CandidateCardPrefix + candidateID
}

// ParseCardID reports whether id belongs to a candidate-derived card and
// returns the bare candidate id if so
func ParseCardID(id string) (candidateID string, ok bool) {
	return strings.CutPrefix(id, CandidateCardPrefix)
}

// SourceID returns the id of the record the card writes back to
func (c *Card) SourceID() string {
	if c.Kind == KindCandidate {
		if id, ok := ParseCardID(c.ID); ok {
			return id
		}
		return c.Candidate.ID
	}
	return c.ID
}

// Clone returns a deep copy of the card
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	out := *c
	if c.Job != nil {
		job := *c.Job
		out.Job = &job
	}
	out.Candidate.Documents = append([]Document(nil), c.Candidate.Documents...)
	if c.Candidate.SalaryExpectation != nil {
		v := *c.Candidate.SalaryExpectation
		out.Candidate.SalaryExpectation = &v
	}
	if c.Candidate.WeeklyHours != nil {
		v := *c.Candidate.WeeklyHours
		out.Candidate.WeeklyHours = &v
	}
	return &out
}

// FullName joins first and last name, skipping blanks
func (r CandidateRef) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Initials returns the avatar fallback, "?" for a missing name part
func (r CandidateRef) Initials() string {
	return initial(r.FirstName) + initial(r.LastName)
}

func initial(s string) string {
	for _, ch := range s {
		return strings.ToUpper(string(ch))
	}
	return "?"
}

// Age returns the age in whole years at now.
// Returns -1 if the date of birth is missing or unparseable.
func (r CandidateRef) Age(now time.Time) int {
	if r.DateOfBirth == "" {
		return -1
	}
	dob, err := parseDate(r.DateOfBirth)
	if err != nil {
		return -1
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// HourlyRate converts a monthly salary expectation to an hourly rate.
// Returns false when salary or weekly hours are missing or zero.
func (r CandidateRef) HourlyRate() (float64, bool) {
	if r.SalaryExpectation == nil || r.WeeklyHours == nil {
		return 0, false
	}
	salary, hours := *r.SalaryExpectation, *r.WeeklyHours
	if salary == 0 || hours == 0 {
		return 0, false
	}
	return (salary * 12) / (hours * 52), true
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// MoveIntent is produced once per drag gesture and consumed once by the move coordinator
type MoveIntent struct {
	CardID    string
	FromStage string
	ToStage   string
}
