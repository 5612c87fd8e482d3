package model

import (
	"fmt"
	"strconv"
)

// Qualified names are the only globally stable identifiers for values. They
// are a de facto wire format: consumers persist these keys, so the grammar
// must not change. The catalog builder and the runtime resolver both go
// through these constructors, which is what keeps their outputs
// byte-identical.
const qualifiedPrefix = "dds"

// BuiltinName returns the qualified name of a built-in variable:
// dds.<provider>.builtin.<category>.<name> with the index appended directly
// when the variable is indexed.
func BuiltinName(provider, category, name string, indexed bool, index int) string {
	qn := fmt.Sprintf("%s.%s.builtin.%s.%s", qualifiedPrefix, provider, category, name)
	if indexed {
		qn += strconv.Itoa(index)
	}
	return qn
}

// QualifiedName returns the qualified name of a built-in variable instance.
func (v *BuiltinVariable) QualifiedName(provider, category string) string {
	return BuiltinName(provider, category, v.Name, v.IsIndexed, v.Index)
}

// CustomName returns the qualified name of a whole custom variable:
// dds.<provider>.custom.<category>.<variable_name>.
func CustomName(provider, category, variable string) string {
	return fmt.Sprintf("%s.%s.custom.%s.%s", qualifiedPrefix, provider, category, variable)
}

// CustomAttributeName returns the qualified name of one attribute of a
// custom variable: dds.<provider>.custom.<category>.<variable>.<attribute>.
func CustomAttributeName(provider, category, variable, attribute string) string {
	return CustomName(provider, category, variable) + "." + attribute
}
