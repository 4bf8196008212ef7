package classify

import "regexp"

// Pattern defines one classification trigger. Token patterns are annotation
// or keyword matches; declaration patterns match structural source text such
// as an extends clause. The vocabulary is a flat table so new frameworks can
// be added (builtin or via config) without touching classifier control flow.
type Pattern struct {
	Name        string
	Category    Category
	Role        Role
	Token       string         // recorded in results as the matched pattern
	Regex       *regexp.Regexp // compiled trigger
	Description string
	Examples    []string // For testing
}

// BuiltinPatterns is the default annotation vocabulary for Java sources.
// Annotation matches are case-sensitive and bounded so @Entity does not
// match @EntityListeners.
var BuiltinPatterns = []Pattern{
	// ============ Persistence (JPA/Hibernate) ============
	{
		Name:        "jpa_entity",
		Category:    CategoryEntity,
		Token:       "@Entity",
		Regex:       regexp.MustCompile(`@Entity\b`),
		Description: "JPA entity class",
		Examples:    []string{"@Entity\npublic class Customer {}"},
	},
	{
		Name:        "jpa_table",
		Category:    CategoryEntity,
		Token:       "@Table",
		Regex:       regexp.MustCompile(`@Table\b`),
		Description: "JPA table mapping",
		Examples:    []string{"@Table(name = \"customers\")"},
	},

	// ============ Business components ============
	{
		Name:        "spring_service",
		Category:    CategoryBusinessComponent,
		Role:        RoleService,
		Token:       "@Service",
		Regex:       regexp.MustCompile(`@Service\b`),
		Description: "Spring service bean",
	},
	{
		Name:        "spring_controller",
		Category:    CategoryBusinessComponent,
		Role:        RoleController,
		Token:       "@Controller",
		Regex:       regexp.MustCompile(`@Controller\b`),
		Description: "Spring MVC controller",
	},
	{
		Name:        "spring_rest_controller",
		Category:    CategoryBusinessComponent,
		Role:        RoleController,
		Token:       "@RestController",
		Regex:       regexp.MustCompile(`@RestController\b`),
		Description: "Spring REST controller",
	},
	{
		Name:        "cdi_named",
		Category:    CategoryBusinessComponent,
		Role:        RoleController,
		Token:       "@Named",
		Regex:       regexp.MustCompile(`@Named\b`),
		Description: "CDI named bean (JSF backing bean)",
	},
	{
		Name:        "jsf_managed_bean",
		Category:    CategoryBusinessComponent,
		Role:        RoleController,
		Token:       "@ManagedBean",
		Regex:       regexp.MustCompile(`@ManagedBean\b`),
		Description: "Legacy JSF managed bean",
	},
	{
		Name:        "extends_controller",
		Category:    CategoryBusinessComponent,
		Role:        RoleController,
		Token:       "extends *Controller",
		Regex:       regexp.MustCompile(`extends\s+\w*Controller\b`),
		Description: "Class extending a controller base class",
		Examples:    []string{"public class OrderView extends BaseController {"},
	},
}

// JSFExtensions are the view-template suffixes classified as JSF pages.
var JSFExtensions = []string{".xhtml", ".jsf"}

// ConfigExtensions are the suffixes considered database-configuration
// candidates; a candidate only classifies as db-config when its content also
// matches at least one DBKeyword.
var ConfigExtensions = []string{".properties", ".xml", ".yml", ".yaml"}

// DBKeywords qualify a configuration candidate as database configuration.
// Matching is case-insensitive.
var DBKeywords = []string{
	"jdbc",
	"datasource",
	"connection",
	"driver",
	"hibernate.dialect",
	"spring.datasource",
}

// Vocabulary bundles every trigger table the classifier consults.
type Vocabulary struct {
	Patterns         []Pattern
	JSFExtensions    []string
	ConfigExtensions []string
	DBKeywords       []string
}

// DefaultVocabulary returns the builtin vocabulary.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Patterns:         BuiltinPatterns,
		JSFExtensions:    JSFExtensions,
		ConfigExtensions: ConfigExtensions,
		DBKeywords:       DBKeywords,
	}
}

// Extend appends additional patterns and keywords to the vocabulary.
func (v *Vocabulary) Extend(patterns []Pattern, dbKeywords []string) {
	v.Patterns = append(v.Patterns, patterns...)
	v.DBKeywords = append(v.DBKeywords, dbKeywords...)
}
