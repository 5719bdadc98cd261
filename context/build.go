package context

import "github.com/astgraph/codescope/model"

// Build flattens one Module into a sequence of context Documents: one for
// the module itself (imports/exports summary), one per top-level function,
// class, class method, and interface. Variables and type aliases get no
// document of their own. Content hashing uses Hash, the
// same dedup key the teacher's document pipeline hashes embedding chunks
// with.
func Build(project string, mod *model.Module) Documents {
	var docs Documents

	moduleDoc := &Document{
		Kind:    KindModule,
		Project: project,
		Path:    mod.FilePath,
		Name:    mod.FilePath,
		Content: moduleSummary(mod),
	}
	if h, err := Hash([]byte(moduleDoc.Content)); err == nil {
		moduleDoc.Hash = h
	}
	docs.Append(moduleDoc)

	for _, fn := range mod.Functions {
		doc := &Document{
			Kind:      KindFunction,
			Project:   project,
			Path:      mod.FilePath,
			Name:      fn.Name,
			Signature: fn.Signature(),
			Content:   functionContent(fn),
		}
		if h, err := Hash([]byte(doc.Content)); err == nil {
			doc.Hash = h
		}
		docs.Append(doc)
	}

	for _, cls := range mod.Classes {
		doc := &Document{
			Kind:    KindClass,
			Project: project,
			Path:    mod.FilePath,
			Name:    cls.Name,
			Content: classContent(cls),
		}
		if h, err := Hash([]byte(doc.Content)); err == nil {
			doc.Hash = h
		}
		docs.Append(doc)
		for _, m := range cls.Methods {
			mDoc := &Document{
				Kind:      KindFunction,
				Project:   project,
				Path:      mod.FilePath,
				Name:      cls.Name + "." + m.Name,
				Signature: m.Signature(),
				Content:   functionContent(m),
			}
			if h, err := Hash([]byte(mDoc.Content)); err == nil {
				mDoc.Hash = h
			}
			docs.Append(mDoc)
		}
	}

	for _, iface := range mod.Interfaces {
		doc := &Document{Kind: KindInterface, Project: project, Path: mod.FilePath, Name: iface.Name, Content: iface.Name}
		if h, err := Hash([]byte(doc.Content)); err == nil {
			doc.Hash = h
		}
		docs.Append(doc)
	}

	return docs
}

func moduleSummary(mod *model.Module) string {
	s := "module " + mod.FilePath + "\n"
	for _, imp := range mod.Imports {
		s += "import " + imp.Module + "\n"
	}
	for _, exp := range mod.Exports {
		s += "export " + exp.Name + "\n"
	}
	return s
}

func functionContent(fn model.Function) string {
	s := fn.Signature()
	if fn.Docstring != nil {
		s = *fn.Docstring + "\n" + s
	}
	return s
}

func classContent(cls model.Class) string {
	s := "class " + cls.Name
	if len(cls.Bases) > 0 || len(cls.Implements) > 0 {
		s += " extends " + joinOrEmpty(cls.Bases) + " implements " + joinOrEmpty(cls.Implements)
	}
	return s
}

func joinOrEmpty(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it
	}
	return out
}
