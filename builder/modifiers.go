package builder

import (
	"github.com/heshanpadmasiri/groovyast/ast"
	"github.com/heshanpadmasiri/groovyast/cst"
)

var visibilityModifiers = map[string]ast.Modifiers{
	"public":    ast.ACC_PUBLIC,
	"private":   ast.ACC_PRIVATE,
	"protected": ast.ACC_PROTECTED,
}

// keywords legal on fields, methods and constructors besides visibility
var memberModifiers = map[string]ast.Modifiers{
	"static":       ast.ACC_STATIC,
	"abstract":     ast.ACC_ABSTRACT,
	"final":        ast.ACC_FINAL,
	"native":       ast.ACC_NATIVE,
	"synchronized": ast.ACC_SYNCHRONIZED,
	"transient":    ast.ACC_TRANSIENT,
	"volatile":     ast.ACC_VOLATILE,
}

// keywords legal on class declarations besides visibility
var classModifiers = map[string]ast.Modifiers{
	"static":   ast.ACC_STATIC,
	"abstract": ast.ACC_ABSTRACT,
	"final":    ast.ACC_FINAL,
	"strictfp": ast.ACC_STRICT,
}

var localModifiers = map[string]ast.Modifiers{
	"final": ast.ACC_FINAL,
}

// constructors accept visibility only
var noModifiers = map[string]ast.Modifiers{}

// modifierKeywords returns the keyword tokens of a modifiers node, skipping
// annotations, def and the default of interface methods.
func modifierKeywords(mods *cst.Node) []*cst.Node {
	if mods == nil {
		return nil
	}
	var out []*cst.Node
	for _, child := range mods.Children() {
		switch child.Kind() {
		case "marker_annotation", "annotation", "def", "default":
			// ignored
		default:
			out = append(out, child)
		}
	}
	return out
}

// resolveModifiers folds the keywords of mods into a mask. A repeated keyword
// and a second visibility keyword are reported and do not stop the build.
// defaultVisibility is added when no visibility keyword is present. The
// second result tells whether visibility was explicit.
func (ctx *BuildContext) resolveModifiers(mods *cst.Node, allowed map[string]ast.Modifiers, defaultVisibility ast.Modifiers) (ast.Modifiers, bool) {
	var mask ast.Modifiers
	var visibility *cst.Node
	for _, kw := range modifierKeywords(mods) {
		text := kw.Text()
		if flag, ok := visibilityModifiers[text]; ok {
			switch {
			case visibility == nil:
				visibility = kw
				mask |= flag
			case visibility.Text() == text:
				ctx.report(kw, "Cannot repeat modifier: %s", text)
			default:
				ctx.report(kw, "Cannot specify modifier: %s when access modifier: %s has already been specified", text, visibility.Text())
			}
			continue
		}
		flag, ok := allowed[text]
		if !ok {
			ctx.report(kw, "Modifier not allowed here: %s", text)
			continue
		}
		if mask&flag != 0 {
			ctx.report(kw, "Cannot repeat modifier: %s", text)
		}
		mask |= flag
	}
	if visibility == nil {
		mask |= defaultVisibility
	}
	return mask, visibility != nil
}

// resolveClassModifiers applies the class convention: without a visibility
// keyword the class is public and marked as synthetically public.
func (ctx *BuildContext) resolveClassModifiers(mods *cst.Node) (ast.Modifiers, bool) {
	mask, _ := ctx.resolveModifiers(mods, classModifiers, ast.ACC_PUBLIC|ast.ACC_SYNTHETIC)
	syntheticPublic := mask&ast.ACC_SYNTHETIC != 0
	return mask &^ ast.ACC_SYNTHETIC, syntheticPublic
}

// forceModifiers replaces the visibility of mods and adds the forced flags.
// Interface and annotation members are always public.
func forceModifiers(mods, forced ast.Modifiers) ast.Modifiers {
	return mods&^ast.VisibilityMask | forced
}

// modifiersOf returns the modifiers child of a declaration, or nil
func modifiersOf(n *cst.Node) *cst.Node {
	return n.FirstChildOfKind("modifiers")
}
