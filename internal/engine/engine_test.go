package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	stderrors "errors"

	"jdisco/internal/errors"
	"jdisco/internal/inventory"
	"jdisco/internal/javaparse"
	"jdisco/internal/slogutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// buildFixtureTree lays out a small but representative Java/JSF project.
func buildFixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "src", "Customer.java"), `
@Entity
public class Customer {
    private Long id;
    public Long getId() { return id; }
}`)

	writeFile(t, filepath.Join(root, "src", "CartBean.java"), `
@Named("cart")
public class CartBean {
    public void checkout(Order order) {
        if (order.isEmpty()) {
            return;
        }
        submit(order);
    }
    private void submit(Order order) {}
}`)

	writeFile(t, filepath.Join(root, "src", "BillingService.java"), `
@Service
public class BillingService {
    public Invoice invoice(Order order) {
        for (Item item : order.items()) {
            tally(item);
        }
        return close();
    }
}`)

	writeFile(t, filepath.Join(root, "src", "Broken.java"), `
@Controller
public class Broken {
    public void m( {
}`)

	writeFile(t, filepath.Join(root, "web", "cart.xhtml"), `<ui:composition/>`)
	writeFile(t, filepath.Join(root, "conf", "db.properties"), "jdbc.url=jdbc:h2:mem:test\n")
	writeFile(t, filepath.Join(root, "README.md"), "# fixture\n")

	return root
}

func scanFixture(t *testing.T, opts Options) *inventory.Model {
	t.Helper()
	e := New(opts, slogutil.NewDiscardLogger())
	model, err := e.Scan(context.Background(), buildFixtureTree(t))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return model
}

func TestScanEndToEnd(t *testing.T) {
	m := scanFixture(t, Options{Workers: 1})

	s := m.Summary
	if s.FilesScanned != 7 {
		t.Errorf("FilesScanned = %d, want 7", s.FilesScanned)
	}
	if s.Entities != 1 {
		t.Errorf("Entities = %d, want 1", s.Entities)
	}
	// CartBean, BillingService, and Broken all carry business annotations.
	if s.BusinessComponents != 3 {
		t.Errorf("BusinessComponents = %d, want 3", s.BusinessComponents)
	}
	if s.JSFPages != 1 {
		t.Errorf("JSFPages = %d, want 1", s.JSFPages)
	}
	if s.DBConfigs != 1 {
		t.Errorf("DBConfigs = %d, want 1", s.DBConfigs)
	}

	// Broken.java contributes no units, only a parse failure.
	if s.ClassesAnalyzed != 2 {
		t.Errorf("ClassesAnalyzed = %d, want 2", s.ClassesAnalyzed)
	}
	if s.ParseFailures != 1 {
		t.Errorf("ParseFailures = %d, want 1", s.ParseFailures)
	}

	found := false
	for _, e := range m.Log {
		if e.Code == errors.ParseFailure && e.File == "src/Broken.java" {
			found = true
		}
	}
	if !found {
		t.Errorf("no parse-failure log entry for Broken.java: %v", m.Log)
	}

	// checkout and invoice both carry control flow and are public.
	if s.BusinessRuleMethods != 2 {
		t.Errorf("BusinessRuleMethods = %d, want 2", s.BusinessRuleMethods)
	}
	if s.ControllersFound != 2 {
		t.Errorf("ControllersFound = %d, want 2", s.ControllersFound)
	}
	if s.ServicesFound != 1 {
		t.Errorf("ServicesFound = %d, want 1", s.ServicesFound)
	}

	if m.Fingerprint == "" {
		t.Error("fingerprint missing")
	}
}

func TestScanWorkerCountInvariance(t *testing.T) {
	sequential := scanFixture(t, Options{Workers: 1})
	parallel := scanFixture(t, Options{Workers: 4})

	if sequential.Summary != parallel.Summary {
		t.Errorf("summaries differ:\nworkers=1: %+v\nworkers=4: %+v",
			sequential.Summary, parallel.Summary)
	}
	if len(sequential.Units) != len(parallel.Units) {
		t.Fatalf("unit counts differ: %d vs %d", len(sequential.Units), len(parallel.Units))
	}
	for i := range sequential.Units {
		if sequential.Units[i].ClassName != parallel.Units[i].ClassName {
			t.Errorf("unit order differs at %d: %s vs %s",
				i, sequential.Units[i].ClassName, parallel.Units[i].ClassName)
		}
	}
}

func TestScanMissingRoot(t *testing.T) {
	e := New(Options{Workers: 1}, slogutil.NewDiscardLogger())
	_, err := e.Scan(context.Background(), filepath.Join(t.TempDir(), "nowhere"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	var derr *errors.DiscoError
	if !stderrors.As(err, &derr) || derr.Code != errors.PathNotFound {
		t.Errorf("err = %v, want PATH_NOT_FOUND", err)
	}
}

func TestScanOversizedFileSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Big.java"), "@Entity\npublic class Big {}")

	e := New(Options{Workers: 1, MaxFileSizeBytes: 5}, slogutil.NewDiscardLogger())
	m, err := e.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if m.Summary.FilesScanned != 1 {
		t.Errorf("FilesScanned = %d, want 1", m.Summary.FilesScanned)
	}
	if m.Summary.Entities != 0 {
		t.Errorf("oversized file was classified: %+v", m.Entities)
	}
	if len(m.Log) != 1 || m.Log[0].Code != errors.FileSkipped {
		t.Fatalf("want one FILE_SKIPPED log entry, got %v", m.Log)
	}
	if m.Log[0].File != "Big.java" {
		t.Errorf("log entry file = %q, want Big.java", m.Log[0].File)
	}
}

func TestScanUnreadableFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "Locked.java")
	writeFile(t, locked, "@Entity\npublic class Locked {}")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0644) })

	m, err := New(Options{Workers: 1}, slogutil.NewDiscardLogger()).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if m.Summary.FileReadErrors != 1 {
		t.Errorf("FileReadErrors = %d, want 1 (log: %v)", m.Summary.FileReadErrors, m.Log)
	}
}

// fixedParser returns the same synthetic unit for every file, standing in
// for an alternative parsing backend.
type fixedParser struct{}

func (fixedParser) Parse(_ context.Context, sourceFile string, _ []byte) ([]javaparse.StructuralUnit, error) {
	return []javaparse.StructuralUnit{{
		ClassName:  "Synthetic",
		Kind:       "class",
		SourceFile: sourceFile,
		Methods: []javaparse.MethodUnit{
			{Name: "run", Visibility: javaparse.VisibilityPublic, HasControlFlow: true},
		},
	}}, nil
}

func TestScanParserFactoryOverride(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Bean.java"), "@Named\npublic class Bean {}")

	e := New(Options{Workers: 1}, slogutil.NewDiscardLogger())
	e.SetParserFactory(func() javaparse.StructuralParser { return fixedParser{} })

	m, err := e.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if m.Summary.ClassesAnalyzed != 1 || m.Units[0].ClassName != "Synthetic" {
		t.Fatalf("swapped parser not used: %+v", m.Units)
	}
	if m.Summary.BusinessRuleMethods != 1 {
		t.Errorf("BusinessRuleMethods = %d, want 1 (scoring over swapped parser output)", m.Summary.BusinessRuleMethods)
	}
}

func TestScanFingerprintStableAcrossRuns(t *testing.T) {
	root := buildFixtureTree(t)
	e := New(Options{Workers: 2}, slogutil.NewDiscardLogger())

	first, err := e.Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if first.Fingerprint != second.Fingerprint {
		t.Errorf("fingerprints differ across identical runs: %s vs %s",
			first.Fingerprint, second.Fingerprint)
	}
}
