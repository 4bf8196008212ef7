package javaparse

// Visibility is a Java method's declared visibility.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityPackage   Visibility = "package"
)

// MethodUnit is one method declaration plus the structural digest of its
// body. BusinessRuleVerdict is set exactly once by the scorer and never
// mutated afterward.
type MethodUnit struct {
	Name                string     `json:"name"`
	Visibility          Visibility `json:"visibility"`
	StartLine           int        `json:"startLine"`
	StatementCount      int        `json:"statementCount"`
	HasControlFlow      bool       `json:"hasControlFlow"`
	BusinessRuleVerdict bool       `json:"businessRuleVerdict"`
}

// StructuralUnit is one parsed Java type (class, interface, or enum) found
// inside a business-component file, with its methods in declaration order.
type StructuralUnit struct {
	ClassName  string       `json:"className"`
	Kind       string       `json:"kind"` // "class", "interface", "enum"
	SourceFile string       `json:"sourceFile"`
	Methods    []MethodUnit `json:"methods"`
}

// PublicMethodCount derives the number of public methods. Derived, never
// stored, so it cannot drift from the method list.
func (u *StructuralUnit) PublicMethodCount() int {
	n := 0
	for i := range u.Methods {
		if u.Methods[i].Visibility == VisibilityPublic {
			n++
		}
	}
	return n
}

// BusinessRuleCount derives the number of methods flagged as business rules.
// By construction it never exceeds PublicMethodCount.
func (u *StructuralUnit) BusinessRuleCount() int {
	n := 0
	for i := range u.Methods {
		if u.Methods[i].BusinessRuleVerdict {
			n++
		}
	}
	return n
}
