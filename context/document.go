// Package context adapts the teacher's embedding-document chunking model
// (inspector/graph/document.go) into an LLM-context-pipeline export over
// this module's L1 Module records, rather than Go declarations.
package context

const chunkSize = 8192 - 256

// Kind indicates the code element a Document represents.
type Kind string

const (
	KindModule    Kind = "Module"
	KindFunction  Kind = "Function"
	KindClass     Kind = "Class"
	KindInterface Kind = "Interface"
	KindVariable  Kind = "Variable"
)

// Document is one chunk of source material sized for an embedding or
// context-window budget.
type Document struct {
	ID        string `json:"id"`
	Kind      Kind   `json:"kind"`
	Project   string `json:"project"`
	Path      string `json:"path"`
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Hash      uint64 `json:"hash"`
	Content   string `json:"content"`
	Part      int    `json:"part"`
}

// Documents is an ordered collection of Document chunks.
type Documents []*Document

// Append adds doc, splitting it into chunkSize-bounded parts first when its
// content exceeds chunkSize.
func (d *Documents) Append(doc *Document) {
	if len(doc.Content) > chunkSize {
		*d = append(*d, SplitDocument(doc)...)
		return
	}
	*d = append(*d, doc)
}

// Size is the total byte budget the Documents would consume.
func (d Documents) Size() int {
	size := 0
	for _, doc := range d {
		if doc != nil {
			size += doc.size()
		}
	}
	return size
}

// FilterBySize keeps leading documents while their running total size stays
// below totalSize; the first document that brings the total to totalSize or
// beyond, and every document after it, is dropped.
func (d Documents) FilterBySize(totalSize int) Documents {
	size := 0
	var result Documents
	for _, doc := range d {
		if doc == nil {
			continue
		}
		size += doc.size()
		if size >= totalSize {
			break
		}
		result = append(result, doc)
	}
	return result
}

// SplitDocument splits a large document into chunkSize-bounded parts.
func SplitDocument(doc *Document) Documents {
	content := doc.Content
	var docs Documents
	n := len(content)
	if n <= chunkSize {
		doc.Part = 0
		docs.Append(doc)
		return docs
	}
	for i, start := 0, 0; start < n; i++ {
		end := start + chunkSize
		if end > n {
			end = n
		}
		chunk := &Document{
			Kind:      doc.Kind,
			Project:   doc.Project,
			Path:      doc.Path,
			Name:      doc.Name,
			Signature: doc.Signature,
			Content:   content[start:end],
			Part:      i + 1,
		}
		if h, err := Hash([]byte(chunk.Content)); err == nil {
			chunk.Hash = h
		}
		docs.Append(chunk)
		start = end
	}
	return docs
}

func (d *Document) size() int {
	return len(d.Content) + len(d.Signature) + len(d.Path) + len(d.Name) + 20
}
