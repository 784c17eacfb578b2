package elaborator

// EntityCollectorPass is Pass 1 (spec §4.1): registers every top-level
// record/interface definition under its canonical `package.Entity` name.
type EntityCollectorPass struct{}

func (EntityCollectorPass) Name() string { return "entity-collection" }

func (EntityCollectorPass) Run(pc *ProgramContext) error {
	for _, id := range pc.orderedSourceIDs() {
		src := pc.Sources[id]
		if pc.CanonicalByQualifiedName[src.Package] == nil {
			pc.CanonicalByQualifiedName[src.Package] = make(map[string]string)
		}
		for _, def := range src.Definitions {
			canonical := src.Package + "." + def.Name()
			if existing, exists := pc.Entities[canonical]; exists {
				return errEntityRedefined(canonical, existing.BindingLoc, def.NameLoc())
			}
			kind := RecordEntity
			if def.IsInterface() {
				kind = InterfaceEntity
			}
			entity := newEntityDef(kind, canonical, src.Package, id, def.NameLoc(), def)
			pc.Entities[canonical] = entity
			pc.CanonicalByQualifiedName[src.Package][def.Name()] = canonical
		}
	}
	return nil
}
