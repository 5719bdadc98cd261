package typescript

import (
	"strings"

	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

func parseInterface(n parsetree.Node) model.Interface {
	iface := model.Interface{ExportType: model.ExportNone, Line: n.Span().StartLine, Span: n.Span()}
	if name := n.ChildByFieldName("name"); name != nil {
		iface.Name = name.Text()
	}
	for _, child := range n.Children() {
		switch child.Kind() {
		case "extends_type_clause", "extends_clause":
			for _, ec := range child.Children() {
				if ec.Kind() == parsetree.KindTypeIdentifier || ec.Kind() == parsetree.KindIdentifier {
					iface.Extends = append(iface.Extends, ec.Text())
				}
			}
		case "interface_body", "object_type":
			parseInterfaceBody(child, &iface)
		}
	}
	return iface
}

func parseInterfaceBody(n parsetree.Node, iface *model.Interface) {
	for _, member := range n.Children() {
		switch member.Kind() {
		case "method_signature":
			fn := model.Function{ExportType: model.ExportNone, Visibility: model.VisibilityNone, Line: member.Span().StartLine, Span: member.Span()}
			if name := member.ChildByFieldName("name"); name != nil {
				fn.Name = name.Text()
			}
			if params := member.ChildByFieldName("parameters"); params != nil {
				fn.Params = parseParameters(params)
			}
			if ret := member.ChildByFieldName("return_type"); ret != nil {
				t := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(ret.Text()), ":"))
				fn.ReturnType = &t
			}
			iface.Methods = append(iface.Methods, fn)
		case "property_signature":
			prop := model.Property{Visibility: model.VisibilityPublic, Line: member.Span().StartLine}
			if name := member.ChildByFieldName("name"); name != nil {
				prop.Name = name.Text()
			}
			for _, c := range member.Children() {
				if c.Kind() == "?" {
					prop.IsOptional = true
				}
				if c.Kind() == parsetree.KindTypeAnnotation {
					t := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(c.Text()), ":"))
					prop.Type = &t
				}
			}
			iface.Properties = append(iface.Properties, prop)
		}
	}
}

func parseTypeAlias(n parsetree.Node) model.TypeAlias {
	alias := model.TypeAlias{ExportType: model.ExportNone, Line: n.Span().StartLine}
	if name := n.ChildByFieldName("name"); name != nil {
		alias.Name = name.Text()
	}
	if value := n.ChildByFieldName("value"); value != nil {
		alias.Definition = strings.TrimSpace(value.Text())
	}
	return alias
}
