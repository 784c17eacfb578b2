package elaborator

import "github.com/funvibe/funxy/internal/ast"

// resolveSourceContexts builds one SourceContext per source file (spec
// §4.2): the local package's own entities plus whatever its imports bring
// into scope.
func resolveSourceContexts(pc *ProgramContext) error {
	for _, id := range pc.orderedSourceIDs() {
		src := pc.Sources[id]
		sc := newSourceContext(src.Package)

		for name, canonical := range pc.CanonicalByQualifiedName[src.Package] {
			sc.EntityAliases[name] = AliasBinding{
				CanonicalName: canonical,
				BindingLoc:    pc.Entities[canonical].BindingLoc,
			}
		}

		for _, imp := range src.Imports {
			if err := applyImport(pc, sc, src, imp); err != nil {
				return err
			}
		}

		pc.SourceContexts[id] = sc
	}
	return nil
}

func applyImport(pc *ProgramContext, sc *SourceContext, src *ast.Source, imp ast.Import) error {
	switch imp.Kind {
	case ast.ImportPackage:
		if imp.Package == src.Package {
			return errNamespaceAlreadyDefined(imp.Package, src.PackageLoc, imp.Loc)
		}
		if existing, exists := sc.Namespaces[imp.Package]; exists {
			return errNamespaceAlreadyDefined(imp.Package, existing.BindingLoc, imp.Loc)
		}
		sc.Namespaces[imp.Package] = NamespaceBinding{PackageName: imp.Package, BindingLoc: imp.Loc}
		return nil

	case ast.ImportEntity:
		names, packageExists := pc.CanonicalByQualifiedName[imp.Package]
		if !packageExists {
			return errNoSuchPackage(imp.Package, imp.Loc)
		}
		canonical, ok := names[imp.Name]
		if !ok {
			return errNoSuchEntity(imp.Package, imp.Name, imp.Loc)
		}
		if existing, exists := sc.EntityAliases[imp.Name]; exists {
			return errEntityRedefined(existing.CanonicalName, existing.BindingLoc, imp.Loc)
		}
		sc.EntityAliases[imp.Name] = AliasBinding{CanonicalName: canonical, BindingLoc: imp.Loc}
		return nil

	default:
		return nil
	}
}
