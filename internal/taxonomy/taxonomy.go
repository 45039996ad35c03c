// Package taxonomy holds the canonical pipeline stages and the mapping
// between the candidate status enum and stage names.
//
// The status to stage mapping is lossy: several statuses collapse into one
// stage (new and contacted both render as "Bewerbung eingegangen"), while
// moving a card into a stage always writes back the single canonical status
// for that stage.
package taxonomy

import (
	"fmt"
	"slices"

	"github.com/thenoetrevino/hirepipe/internal/models"
)

// Canonical stage names
const (
	StageReceived        = "Bewerbung eingegangen"
	StageFirstInterview  = "Erstgespräch"
	StageTrialWork       = "Probearbeiten"
	StageSecondInterview = "Zweitgespräch"
	StageOffer           = "Angebot"
	StageRejected        = "Abgelehnt"
)

// Candidate status values
const (
	StatusNew             = "new"
	StatusContacted       = "contacted"
	StatusFirstInterview  = "first_interview"
	StatusInterviewed     = "interviewed"
	StatusTrialWork       = "trial_work"
	StatusSecondInterview = "second_interview"
	StatusOfferExtended   = "offer_extended"
	StatusRejected        = "rejected"
	StatusArchived        = "archived"
)

// Taxonomy is an immutable, ordered set of stages plus the status tables.
// Safe for concurrent use.
type Taxonomy struct {
	stages        []models.Stage
	index         map[string]int
	statusToStage map[string]string
	stageToStatus map[string]string
	defaultStage  string
}

// Option customizes a Taxonomy at construction
type Option func(*Taxonomy)

// WithStatusMap replaces the status tables
func WithStatusMap(statusToStage, stageToStatus map[string]string) Option {
	return func(t *Taxonomy) {
		t.statusToStage = cloneMap(statusToStage)
		t.stageToStatus = cloneMap(stageToStatus)
	}
}

// WithDefaultStage sets the stage unknown statuses fall back to
func WithDefaultStage(name string) Option {
	return func(t *Taxonomy) {
		t.defaultStage = name
	}
}

// DefaultStages returns the canonical board stages
func DefaultStages() []models.Stage {
	return []models.Stage{
		{Name: StageReceived, Color: "#3b82f6", Order: 0},
		{Name: StageFirstInterview, Color: "#8b5cf6", Order: 1},
		{Name: StageTrialWork, Color: "#f59e0b", Order: 2},
		{Name: StageSecondInterview, Color: "#06b6d4", Order: 3},
		{Name: StageOffer, Color: "#10b981", Order: 4},
		{Name: StageRejected, Color: "#ef4444", Order: 5},
	}
}

// DefaultStatusToStage returns the lossy status -> stage table
func DefaultStatusToStage() map[string]string {
	return map[string]string{
		StatusNew:             StageReceived,
		StatusContacted:       StageReceived,
		StatusFirstInterview:  StageFirstInterview,
		StatusInterviewed:     StageFirstInterview,
		StatusTrialWork:       StageTrialWork,
		StatusSecondInterview: StageSecondInterview,
		StatusOfferExtended:   StageOffer,
		StatusRejected:        StageRejected,
		StatusArchived:        StageRejected,
	}
}

// DefaultStageToStatus returns the canonical status written for each stage
func DefaultStageToStatus() map[string]string {
	return map[string]string{
		StageReceived:        StatusNew,
		StageFirstInterview:  StatusFirstInterview,
		StageTrialWork:       StatusTrialWork,
		StageSecondInterview: StatusSecondInterview,
		StageOffer:           StatusOfferExtended,
		StageRejected:        StatusRejected,
	}
}

// Default returns the canonical taxonomy used by the all-candidates board
func Default() *Taxonomy {
	t, err := New(DefaultStages())
	if err != nil {
		// The built-in stage list is static and unique
		panic(err)
	}
	return t
}

// New builds a taxonomy from stages, ordered by Order with ties kept in
// insertion order. The default stage is the first stage unless overridden.
func New(stages []models.Stage, opts ...Option) (*Taxonomy, error) {
	t := &Taxonomy{
		stages:        slices.Clone(stages),
		index:         make(map[string]int, len(stages)),
		statusToStage: DefaultStatusToStage(),
		stageToStatus: DefaultStageToStatus(),
	}

	slices.SortStableFunc(t.stages, func(a, b models.Stage) int {
		return a.Order - b.Order
	})

	for i, s := range t.stages {
		if s.Name == "" {
			return nil, ErrEmptyStageName
		}
		if _, dup := t.index[s.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStage, s.Name)
		}
		t.index[s.Name] = i
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.defaultStage == "" {
		if len(t.stages) > 0 {
			t.defaultStage = t.stages[0].Name
		} else {
			t.defaultStage = StageReceived
		}
	}

	return t, nil
}

// FromDefinitions builds a taxonomy from per-job stage definitions.
// Falls back to the default stages when the job has none.
func FromDefinitions(defs []models.StageDefinition) (*Taxonomy, error) {
	if len(defs) == 0 {
		return Default(), nil
	}
	stages := make([]models.Stage, 0, len(defs))
	for _, d := range defs {
		stages = append(stages, d.ToStage())
	}
	return New(stages)
}

// StageForStatus maps a raw status to a stage name.
// Total: unknown or empty statuses map to the default stage.
func (t *Taxonomy) StageForStatus(status string) string {
	if stage, ok := t.statusToStage[status]; ok {
		return stage
	}
	return t.defaultStage
}

// StatusForStage returns the canonical status written when a card moves into
// stage. ok is false for stages without a discrete status.
func (t *Taxonomy) StatusForStage(stage string) (status string, ok bool) {
	status, ok = t.stageToStatus[stage]
	return status, ok
}

// StatusesForStage returns every raw status that renders as stage, sorted
func (t *Taxonomy) StatusesForStage(stage string) []string {
	var out []string
	for status, s := range t.statusToStage {
		if s == stage {
			out = append(out, status)
		}
	}
	slices.Sort(out)
	return out
}

// AllStagesExcept returns the ordered stages without the excluded names
func (t *Taxonomy) AllStagesExcept(excluded ...string) []models.Stage {
	out := make([]models.Stage, 0, len(t.stages))
	for _, s := range t.stages {
		if slices.Contains(excluded, s.Name) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Stages returns all stages in render order
func (t *Taxonomy) Stages() []models.Stage {
	return slices.Clone(t.stages)
}

// Stage looks up a stage by name
func (t *Taxonomy) Stage(name string) (models.Stage, bool) {
	i, ok := t.index[name]
	if !ok {
		return models.Stage{}, false
	}
	return t.stages[i], true
}

// DefaultStage returns the stage unknown statuses map to
func (t *Taxonomy) DefaultStage() string {
	return t.defaultStage
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
