package models

import (
	"testing"
	"time"
)

// ============================================================================
// Card ID Tests
// ============================================================================

func TestParseCardID(t *testing.T) {
	tests := []struct {
		id     string
		wantID string
		wantOK bool
	}{
		{CandidateCardID("c1"), "c1", true},
		{"a1", "a1", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := ParseCardID(tt.id)
			if got != tt.wantID || ok != tt.wantOK {
				t.Errorf("ParseCardID(%q) = (%q, %v), want (%q, %v)", tt.id, got, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestCard_SourceID(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want string
	}{
		{"application", Card{ID: "a1", Kind: KindApplication, Candidate: CandidateRef{ID: "c1"}}, "a1"},
		{"candidate", Card{ID: CandidateCardID("c1"), Kind: KindCandidate}, "c1"},
		{"candidate without prefix", Card{ID: "x", Kind: KindCandidate, Candidate: CandidateRef{ID: "c2"}}, "c2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.SourceID(); got != tt.want {
				t.Errorf("SourceID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCard_CloneIsDeep(t *testing.T) {
	salary := 3200.0
	orig := &Card{
		ID:  "a1",
		Job: &JobRef{ID: "j1", Title: "ZFA"},
		Candidate: CandidateRef{
			Documents:         []Document{{Name: "cv.pdf"}},
			SalaryExpectation: &salary,
		},
	}

	clone := orig.Clone()
	clone.Job.Title = "changed"
	clone.Candidate.Documents[0].Name = "changed"
	*clone.Candidate.SalaryExpectation = 1

	if orig.Job.Title != "ZFA" {
		t.Error("Clone shares the job")
	}
	if orig.Candidate.Documents[0].Name != "cv.pdf" {
		t.Error("Clone shares the documents")
	}
	if *orig.Candidate.SalaryExpectation != 3200 {
		t.Error("Clone shares the salary expectation")
	}

	var nilCard *Card
	if nilCard.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

// ============================================================================
// Candidate Fact Tests
// ============================================================================

func TestCandidateRef_Names(t *testing.T) {
	r := CandidateRef{FirstName: "anna", LastName: "Berger"}
	if got := r.FullName(); got != "anna Berger" {
		t.Errorf("FullName() = %q", got)
	}
	if got := r.Initials(); got != "AB" {
		t.Errorf("Initials() = %q", got)
	}

	empty := CandidateRef{LastName: "Berger"}
	if got := empty.FullName(); got != "Berger" {
		t.Errorf("FullName() = %q", got)
	}
	if got := empty.Initials(); got != "?B" {
		t.Errorf("Initials() = %q", got)
	}
}

func TestCandidateRef_Age(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		dob  string
		want int
	}{
		{"1990-06-15", 34},
		{"1990-06-16", 33},
		{"1990-01-01T00:00:00Z", 34},
		{"", -1},
		{"not a date", -1},
	}

	for _, tt := range tests {
		t.Run(tt.dob, func(t *testing.T) {
			if got := (CandidateRef{DateOfBirth: tt.dob}).Age(now); got != tt.want {
				t.Errorf("Age() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCandidateRef_HourlyRate(t *testing.T) {
	salary, hours, zero := 2600.0, 40.0, 0.0

	rate, ok := CandidateRef{SalaryExpectation: &salary, WeeklyHours: &hours}.HourlyRate()
	if !ok || rate != 15 {
		t.Errorf("HourlyRate() = (%v, %v), want (15, true)", rate, ok)
	}

	if _, ok := (CandidateRef{SalaryExpectation: &salary}).HourlyRate(); ok {
		t.Error("HourlyRate() without hours should be false")
	}
	if _, ok := (CandidateRef{SalaryExpectation: &salary, WeeklyHours: &zero}).HourlyRate(); ok {
		t.Error("HourlyRate() with zero hours should be false")
	}
}

func TestCardKind_String(t *testing.T) {
	if KindApplication.String() != "application" || KindCandidate.String() != "candidate" {
		t.Error("unexpected kind names")
	}
	if CardKind(9).String() != "unknown" {
		t.Error("unknown kind should print unknown")
	}
}
