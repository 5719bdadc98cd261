package typescript

import (
	"strings"

	"github.com/astgraph/codescope/model"
	"github.com/astgraph/codescope/parsetree"
)

func parseClass(n parsetree.Node) model.Class {
	cls := model.Class{
		ExportType: model.ExportNone,
		Line:       n.Span().StartLine,
		Span:       n.Span(),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		cls.Name = name.Text()
	}
	for _, child := range n.Children() {
		switch child.Kind() {
		case "abstract":
			cls.IsAbstract = true
		case parsetree.KindDecorator:
			cls.Decorators = append(cls.Decorators, strings.TrimSpace(child.Text()))
		case "class_heritage":
			bases, impls := parseHeritage(child)
			cls.Bases = append(cls.Bases, bases...)
			cls.Implements = append(cls.Implements, impls...)
		case parsetree.KindClassBody:
			parseClassBody(child, &cls)
		}
	}
	return cls
}

func parseHeritage(n parsetree.Node) (bases, impls []string) {
	for _, child := range n.Children() {
		switch child.Kind() {
		case "extends_clause":
			for _, ec := range child.Children() {
				if ec.Kind() == parsetree.KindIdentifier || ec.Kind() == parsetree.KindTypeIdentifier || ec.Kind() == parsetree.KindMemberExpression {
					bases = append(bases, ec.Text())
				}
			}
		case "implements_clause":
			for _, ic := range child.Children() {
				if ic.Kind() == parsetree.KindTypeIdentifier || ic.Kind() == parsetree.KindIdentifier {
					impls = append(impls, ic.Text())
				}
			}
		}
	}
	return bases, impls
}

func parseClassBody(n parsetree.Node, cls *model.Class) {
	for _, member := range n.Children() {
		switch member.Kind() {
		case parsetree.KindMethodDefinition:
			method := parseFunctionLike(member, true)
			cls.Methods = append(cls.Methods, method)
		case parsetree.KindPublicFieldDefinition:
			cls.Properties = append(cls.Properties, parseField(member, model.VisibilityPublic))
		case parsetree.KindPrivateFieldDefinition:
			cls.Properties = append(cls.Properties, parseField(member, model.VisibilityPrivate))
		}
	}
}

func parseField(n parsetree.Node, defaultVisibility model.Visibility) model.Property {
	prop := model.Property{Visibility: defaultVisibility, Line: n.Span().StartLine}
	if name := n.ChildByFieldName("property"); name != nil {
		prop.Name = name.Text()
		if name.Kind() == parsetree.KindPrivatePropertyIdent {
			prop.Visibility = model.VisibilityPrivate
		}
	}
	for _, child := range n.Children() {
		switch child.Kind() {
		case "static":
			prop.IsStatic = true
		case "?":
			prop.IsOptional = true
		case parsetree.KindAccessibilityModifier:
			prop.Visibility = model.Visibility(child.Text())
		case parsetree.KindTypeAnnotation:
			t := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(child.Text()), ":"))
			prop.Type = &t
		}
	}
	return prop
}
