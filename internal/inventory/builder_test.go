package inventory

import (
	"testing"

	"jdisco/internal/classify"
	"jdisco/internal/errors"
	"jdisco/internal/javaparse"
	"jdisco/internal/rules"
	"jdisco/internal/walker"
)

func fileRec(rel string) walker.FileRecord {
	return walker.FileRecord{RelativePath: rel, Extension: ".java"}
}

func scoredUnit(sourceFile, className string, methods ...javaparse.MethodUnit) javaparse.StructuralUnit {
	unit := javaparse.StructuralUnit{
		ClassName:  className,
		Kind:       "class",
		SourceFile: sourceFile,
		Methods:    methods,
	}
	rules.NewScorer().Score(&unit)
	return unit
}

func publicRuleMethod(name string) javaparse.MethodUnit {
	return javaparse.MethodUnit{Name: name, Visibility: javaparse.VisibilityPublic, HasControlFlow: true}
}

func TestBuildSummaryCounts(t *testing.T) {
	b := NewBuilder("/app", "app")

	for i := 0; i < 6; i++ {
		b.FileVisited()
	}

	b.AddMatch(fileRec("src/Customer.java"), classify.Match{
		Category: classify.CategoryEntity, Patterns: []string{"@Entity"},
	})
	b.AddMatch(fileRec("src/CartBean.java"), classify.Match{
		Category: classify.CategoryBusinessComponent,
		Patterns: []string{"@Named"},
		Roles:    []classify.Role{classify.RoleController},
	})
	b.AddMatch(fileRec("src/Billing.java"), classify.Match{
		Category: classify.CategoryBusinessComponent,
		Patterns: []string{"@Service"},
		Roles:    []classify.Role{classify.RoleService},
	})
	b.AddMatch(walker.FileRecord{RelativePath: "web/cart.xhtml", Extension: ".xhtml"}, classify.Match{
		Category: classify.CategoryJSFPage,
	})
	b.AddMatch(walker.FileRecord{RelativePath: "db.properties", Extension: ".properties"}, classify.Match{
		Category: classify.CategoryDBConfig, Patterns: []string{"jdbc"},
	})

	b.AddUnit(scoredUnit("src/CartBean.java", "CartBean",
		publicRuleMethod("checkout"),
		publicRuleMethod("clear"),
		javaparse.MethodUnit{Name: "helper", Visibility: javaparse.VisibilityPrivate, HasControlFlow: true},
	))
	b.AddUnit(scoredUnit("src/Billing.java", "Billing",
		publicRuleMethod("invoice"),
	))

	m := b.Build("abc123")

	s := m.Summary
	if s.FilesScanned != 6 {
		t.Errorf("FilesScanned = %d, want 6", s.FilesScanned)
	}
	if s.Entities != 1 || s.BusinessComponents != 2 || s.JSFPages != 1 || s.DBConfigs != 1 {
		t.Errorf("category totals = %d/%d/%d/%d", s.Entities, s.BusinessComponents, s.JSFPages, s.DBConfigs)
	}
	if s.ClassesAnalyzed != 2 {
		t.Errorf("ClassesAnalyzed = %d, want 2", s.ClassesAnalyzed)
	}
	if s.ControllersFound != 1 || s.ServicesFound != 1 {
		t.Errorf("roles = %d controllers / %d services, want 1/1", s.ControllersFound, s.ServicesFound)
	}
	if s.PublicMethods != 3 {
		t.Errorf("PublicMethods = %d, want 3", s.PublicMethods)
	}
	if s.BusinessRuleMethods != 3 {
		t.Errorf("BusinessRuleMethods = %d, want 3", s.BusinessRuleMethods)
	}
	if s.AvgBusinessRulesPerController != 2 {
		t.Errorf("AvgBusinessRulesPerController = %v, want 2", s.AvgBusinessRulesPerController)
	}
	if s.AvgBusinessRulesPerService != 1 {
		t.Errorf("AvgBusinessRulesPerService = %v, want 1", s.AvgBusinessRulesPerService)
	}

	if m.ScanID == "" {
		t.Error("ScanID empty")
	}
	if m.Fingerprint != "abc123" {
		t.Errorf("Fingerprint = %q", m.Fingerprint)
	}
	if m.FinishedAt.Before(m.StartedAt) {
		t.Error("FinishedAt before StartedAt")
	}
}

func TestBuildZeroDenominatorAverages(t *testing.T) {
	b := NewBuilder("/empty", "empty")
	m := b.Build("")

	if m.Summary.AvgBusinessRulesPerController != 0 {
		t.Errorf("controller average = %v, want 0", m.Summary.AvgBusinessRulesPerController)
	}
	if m.Summary.AvgBusinessRulesPerService != 0 {
		t.Errorf("service average = %v, want 0", m.Summary.AvgBusinessRulesPerService)
	}
}

func TestBuildDeterministicOrdering(t *testing.T) {
	build := func(order []string) *Model {
		b := NewBuilder("/app", "app")
		for _, rel := range order {
			b.AddMatch(fileRec(rel), classify.Match{
				Category: classify.CategoryEntity, Patterns: []string{"@Entity"},
			})
		}
		b.AddUnit(scoredUnit("src/B.java", "B"))
		b.AddUnit(scoredUnit("src/A.java", "Z"))
		b.AddUnit(scoredUnit("src/A.java", "A"))
		return b.Build("fp")
	}

	first := build([]string{"src/C.java", "src/A.java", "src/B.java"})
	second := build([]string{"src/B.java", "src/C.java", "src/A.java"})

	for i := range first.Entities {
		if first.Entities[i].File.RelativePath != second.Entities[i].File.RelativePath {
			t.Errorf("entity order differs at %d", i)
		}
	}
	wantUnits := []string{"A", "Z", "B"}
	for i, u := range first.Units {
		if u.ClassName != wantUnits[i] {
			t.Errorf("unit %d = %s, want %s", i, u.ClassName, wantUnits[i])
		}
	}
}

func TestBuildOverlapCountsBoth(t *testing.T) {
	b := NewBuilder("/app", "app")
	rec := fileRec("src/Customer.java")
	b.AddMatch(rec, classify.Match{Category: classify.CategoryEntity, Patterns: []string{"@Entity"}})
	b.AddMatch(rec, classify.Match{
		Category: classify.CategoryBusinessComponent,
		Patterns: []string{"@Named"},
		Roles:    []classify.Role{classify.RoleController},
	})

	m := b.Build("")
	if m.Summary.Entities != 1 || m.Summary.BusinessComponents != 1 {
		t.Errorf("overlapping file counted %d/%d, want 1/1",
			m.Summary.Entities, m.Summary.BusinessComponents)
	}
}

func TestBuildLogCounters(t *testing.T) {
	b := NewBuilder("/app", "app")
	b.AddLog(errors.ParseFailure, "src/Broken.java", "file does not parse as Java")
	b.AddLog(errors.FileReadError, "src/Locked.java", "permission denied")
	b.AddLog(errors.FileReadError, "src/Gone.java", "no such file")

	m := b.Build("")
	if m.Summary.ParseFailures != 1 {
		t.Errorf("ParseFailures = %d, want 1", m.Summary.ParseFailures)
	}
	if m.Summary.FileReadErrors != 2 {
		t.Errorf("FileReadErrors = %d, want 2", m.Summary.FileReadErrors)
	}
	if len(m.Log) != 3 {
		t.Errorf("log entries = %d, want 3", len(m.Log))
	}
	for _, e := range m.Log {
		if e.Level != "warn" {
			t.Errorf("log level = %q, want warn", e.Level)
		}
	}
}
