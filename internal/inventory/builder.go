package inventory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"jdisco/internal/classify"
	"jdisco/internal/errors"
	"jdisco/internal/javaparse"
	"jdisco/internal/output"
	"jdisco/internal/rules"
	"jdisco/internal/walker"
)

// Builder is the single synchronization point of the scan: workers push
// per-file partial results here and Build assembles the immutable model.
// All methods are safe for concurrent use.
type Builder struct {
	mu sync.Mutex

	root      string
	project   string
	startedAt time.Time

	filesScanned       int
	entities           []Entry
	businessComponents []Entry
	jsfPages           []Entry
	dbConfigs          []Entry
	units              []Unit
	log                []LogEntry
}

// NewBuilder creates a builder for one scan of root.
func NewBuilder(root, project string) *Builder {
	return &Builder{
		root:      root,
		project:   project,
		startedAt: time.Now().UTC(),
	}
}

// FileVisited records one walked file, classified or not.
func (b *Builder) FileVisited() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filesScanned++
}

// AddMatch records one category membership for a file.
func (b *Builder) AddMatch(rec walker.FileRecord, m classify.Match) {
	entry := Entry{File: rec, Patterns: m.Patterns}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch m.Category {
	case classify.CategoryEntity:
		b.entities = append(b.entities, entry)
	case classify.CategoryBusinessComponent:
		entry.Roles = m.Roles
		b.businessComponents = append(b.businessComponents, entry)
	case classify.CategoryJSFPage:
		b.jsfPages = append(b.jsfPages, entry)
	case classify.CategoryDBConfig:
		b.dbConfigs = append(b.dbConfigs, entry)
	}
}

// AddUnit records one scored structural unit.
func (b *Builder) AddUnit(unit javaparse.StructuralUnit) {
	u := Unit{StructuralUnit: unit, Stats: rules.Stats(&unit)}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.units = append(b.units, u)
}

// AddLog records a recoverable failure.
func (b *Builder) AddLog(code errors.ErrorCode, file, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = append(b.log, LogEntry{
		Level:   "warn",
		Code:    code,
		File:    file,
		Message: message,
	})
}

// Build assembles the immutable model. Lists are sorted by relative path so
// repeated scans of an unchanged tree emit identical results regardless of
// worker interleaving; the summary is derived from the sorted lists.
func (b *Builder) Build(fingerprint string) *Model {
	b.mu.Lock()
	defer b.mu.Unlock()

	sortEntries(b.entities)
	sortEntries(b.businessComponents)
	sortEntries(b.jsfPages)
	sortEntries(b.dbConfigs)

	sort.Slice(b.units, func(i, j int) bool {
		if b.units[i].SourceFile != b.units[j].SourceFile {
			return b.units[i].SourceFile < b.units[j].SourceFile
		}
		return b.units[i].ClassName < b.units[j].ClassName
	})

	sort.Slice(b.log, func(i, j int) bool {
		if b.log[i].File != b.log[j].File {
			return b.log[i].File < b.log[j].File
		}
		if b.log[i].Code != b.log[j].Code {
			return b.log[i].Code < b.log[j].Code
		}
		return b.log[i].Message < b.log[j].Message
	})

	m := &Model{
		ScanID:      uuid.NewString(),
		Root:        b.root,
		Project:     b.project,
		Fingerprint: fingerprint,
		StartedAt:   b.startedAt,
		FinishedAt:  time.Now().UTC(),

		Entities:           b.entities,
		BusinessComponents: b.businessComponents,
		JSFPages:           b.jsfPages,
		DBConfigs:          b.dbConfigs,
		Units:              b.units,
		Log:                b.log,
	}
	m.Summary = deriveSummary(m, b.filesScanned)
	return m
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].File.RelativePath < entries[j].File.RelativePath
	})
}

// deriveSummary computes every statistic from the model's lists. A class
// recorded under both the entity and business-component categories counts
// toward both category totals; totals are per-category list lengths.
func deriveSummary(m *Model, filesScanned int) Summary {
	s := Summary{
		FilesScanned:       filesScanned,
		Entities:           len(m.Entities),
		BusinessComponents: len(m.BusinessComponents),
		JSFPages:           len(m.JSFPages),
		DBConfigs:          len(m.DBConfigs),
		ClassesAnalyzed:    len(m.Units),
	}

	// Component roles, keyed by source file.
	roles := make(map[string][]classify.Role, len(m.BusinessComponents))
	for _, e := range m.BusinessComponents {
		roles[e.File.RelativePath] = e.Roles
		if hasRole(e.Roles, classify.RoleController) {
			s.ControllersFound++
		}
		if hasRole(e.Roles, classify.RoleService) {
			s.ServicesFound++
		}
	}

	controllerRules := 0
	serviceRules := 0
	for i := range m.Units {
		u := &m.Units[i]
		s.PublicMethods += u.Stats.PublicMethods
		s.BusinessRuleMethods += u.Stats.BusinessRuleMethods

		r := roles[u.SourceFile]
		if hasRole(r, classify.RoleController) {
			controllerRules += u.Stats.BusinessRuleMethods
		}
		if hasRole(r, classify.RoleService) {
			serviceRules += u.Stats.BusinessRuleMethods
		}
	}

	s.AvgBusinessRulesPerController = output.SafeAverage(controllerRules, s.ControllersFound)
	s.AvgBusinessRulesPerService = output.SafeAverage(serviceRules, s.ServicesFound)

	for _, entry := range m.Log {
		switch entry.Code {
		case errors.ParseFailure:
			s.ParseFailures++
		case errors.FileReadError:
			s.FileReadErrors++
		}
	}

	return s
}

func hasRole(roles []classify.Role, role classify.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
