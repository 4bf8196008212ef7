// Package inventory accumulates classification and scoring results into the
// terminal, immutable result model handed to renderers.
package inventory

import (
	"time"

	"jdisco/internal/classify"
	"jdisco/internal/errors"
	"jdisco/internal/javaparse"
	"jdisco/internal/rules"
	"jdisco/internal/walker"
)

// Entry is one classified file with the pattern tokens that matched it.
// Roles is populated for business components only.
type Entry struct {
	File     walker.FileRecord `json:"file"`
	Patterns []string          `json:"patterns,omitempty"`
	Roles    []classify.Role   `json:"roles,omitempty"`
}

// Unit is one parsed and scored structural unit plus its derived counts.
type Unit struct {
	javaparse.StructuralUnit
	Stats rules.UnitStats `json:"stats"`
}

// LogEntry is one recoverable failure recorded during the scan. The log is
// part of the model and surfaces in every renderer.
type LogEntry struct {
	Level   string           `json:"level"`
	Code    errors.ErrorCode `json:"code"`
	File    string           `json:"file,omitempty"`
	Message string           `json:"message"`
}

// Summary holds the derived statistics of a scan. Every field is a pure
// function of the model's lists, computed once at Build; nothing here is
// tracked independently.
type Summary struct {
	FilesScanned       int `json:"filesScanned"`
	Entities           int `json:"entities"`
	BusinessComponents int `json:"businessComponents"`
	JSFPages           int `json:"jsfPages"`
	DBConfigs          int `json:"dbConfigs"`

	ClassesAnalyzed     int `json:"classesAnalyzed"`
	ControllersFound    int `json:"controllersFound"`
	ServicesFound       int `json:"servicesFound"`
	PublicMethods       int `json:"publicMethods"`
	BusinessRuleMethods int `json:"businessRuleMethods"`

	// Averages are rounded to two decimals; a zero denominator yields 0.00.
	AvgBusinessRulesPerController float64 `json:"avgBusinessRulesPerController"`
	AvgBusinessRulesPerService    float64 `json:"avgBusinessRulesPerService"`

	ParseFailures  int `json:"parseFailures"`
	FileReadErrors int `json:"fileReadErrors"`
}

// Model is the terminal artifact of a scan. It is constructed exactly once
// by Builder.Build, then handed by reference to renderers; nothing mutates
// it afterward, so concurrent readers never race.
type Model struct {
	ScanID      string    `json:"scanId"`
	Root        string    `json:"root"`
	Project     string    `json:"project"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`

	Entities           []Entry `json:"entities"`
	BusinessComponents []Entry `json:"businessComponents"`
	JSFPages           []Entry `json:"jsfPages"`
	DBConfigs          []Entry `json:"dbConfigs"`

	Units []Unit     `json:"units"`
	Log   []LogEntry `json:"log"`

	Summary Summary `json:"summary"`
}
