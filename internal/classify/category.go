// Package classify decides which architectural categories a discovered file
// belongs to, using an explicit pattern vocabulary over paths and contents.
package classify

// Category is one architectural category a file can belong to. A file may
// belong to zero, one, or several categories; membership is a set test, not
// a single-label assignment.
type Category string

const (
	// CategoryEntity marks JPA/Hibernate persistence classes.
	CategoryEntity Category = "entity"
	// CategoryBusinessComponent marks service/controller/backing-bean classes.
	CategoryBusinessComponent Category = "business-component"
	// CategoryJSFPage marks JavaServer Faces view templates.
	CategoryJSFPage Category = "jsf-page"
	// CategoryDBConfig marks configuration files referencing a database.
	CategoryDBConfig Category = "db-config"
)

// Role refines a business component by what drives it. Used for the
// per-role summary statistics.
type Role string

const (
	// RoleController covers @Controller/@RestController classes, classes
	// extending a *Controller base, and JSF backing beans (@Named,
	// @ManagedBean), which drive views the same way controllers do.
	RoleController Role = "controller"
	// RoleService covers @Service classes.
	RoleService Role = "service"
	// RoleNone is for patterns that don't imply a component role.
	RoleNone Role = ""
)

// Match records one category membership together with the pattern tokens
// that triggered it.
type Match struct {
	Category Category `json:"category"`
	Patterns []string `json:"patterns"`
	Roles    []Role   `json:"-"`
}
