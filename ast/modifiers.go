package ast

import "strings"

// Modifier bit flags. The values follow the JVM access flags.
const (
	ACC_PUBLIC       Modifiers = 0x0001
	ACC_PRIVATE      Modifiers = 0x0002
	ACC_PROTECTED    Modifiers = 0x0004
	ACC_STATIC       Modifiers = 0x0008
	ACC_FINAL        Modifiers = 0x0010
	ACC_SYNCHRONIZED Modifiers = 0x0020
	ACC_VOLATILE     Modifiers = 0x0040
	ACC_TRANSIENT    Modifiers = 0x0080
	ACC_NATIVE       Modifiers = 0x0100
	ACC_INTERFACE    Modifiers = 0x0200
	ACC_ABSTRACT     Modifiers = 0x0400
	ACC_STRICT       Modifiers = 0x0800
	ACC_SYNTHETIC    Modifiers = 0x1000
	ACC_ANNOTATION   Modifiers = 0x2000
	ACC_ENUM         Modifiers = 0x4000

	VisibilityMask = ACC_PUBLIC | ACC_PRIVATE | ACC_PROTECTED
)

// Modifiers represents declaration modifiers as a bitmask
type Modifiers uint32

var modifierNames = []struct {
	flag Modifiers
	name string
}{
	{ACC_PUBLIC, "public"},
	{ACC_PRIVATE, "private"},
	{ACC_PROTECTED, "protected"},
	{ACC_STATIC, "static"},
	{ACC_FINAL, "final"},
	{ACC_SYNCHRONIZED, "synchronized"},
	{ACC_VOLATILE, "volatile"},
	{ACC_TRANSIENT, "transient"},
	{ACC_NATIVE, "native"},
	{ACC_INTERFACE, "interface"},
	{ACC_ABSTRACT, "abstract"},
	{ACC_STRICT, "strictfp"},
	{ACC_SYNTHETIC, "synthetic"},
	{ACC_ANNOTATION, "annotation"},
	{ACC_ENUM, "enum"},
}

func (m Modifiers) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m&mn.flag != 0 {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, " ")
}

func (m Modifiers) Has(flag Modifiers) bool {
	return m&flag == flag
}

func (m Modifiers) IsPublic() bool {
	return m&ACC_PUBLIC != 0
}

func (m Modifiers) IsStatic() bool {
	return m&ACC_STATIC != 0
}

// Visibility returns only the visibility bits of m
func (m Modifiers) Visibility() Modifiers {
	return m & VisibilityMask
}

// ModifierFor returns the flag for a modifier keyword
func ModifierFor(keyword string) (Modifiers, bool) {
	for _, mn := range modifierNames {
		if mn.name == keyword {
			return mn.flag, true
		}
	}
	return 0, false
}
