package parsetree

// Kind constants name the closed vocabulary of node kinds the builders
// recognise, drawn verbatim from the tree-sitter javascript/typescript
// grammars' node type strings (§6.1). Builders keep one unknown-kind branch
// that ignores gracefully rather than switching over every grammar
// production, per §9's re-architecture guidance.
const (
	KindImportStatement        = "import_statement"
	KindImportClause           = "import_clause"
	KindNamespaceImport        = "namespace_import"
	KindNamedImports           = "named_imports"
	KindImportSpecifier        = "import_specifier"
	KindExportStatement        = "export_statement"
	KindFunctionDeclaration    = "function_declaration"
	KindGeneratorFunctionDecl  = "generator_function_declaration"
	KindClassDeclaration       = "class_declaration"
	KindClassBody              = "class_body"
	KindMethodDefinition       = "method_definition"
	KindPublicFieldDefinition  = "public_field_definition"
	KindPrivateFieldDefinition = "private_field_definition"
	KindInterfaceDeclaration   = "interface_declaration"
	KindTypeAliasDeclaration   = "type_alias_declaration"
	KindLexicalDeclaration     = "lexical_declaration"
	KindVariableDeclaration    = "variable_declaration"
	KindVariableDeclarator     = "variable_declarator"
	KindFormalParameters       = "formal_parameters"
	KindRequiredParameter      = "required_parameter"
	KindOptionalParameter      = "optional_parameter"
	KindRestParameter          = "rest_parameter"
	KindTypeAnnotation         = "type_annotation"
	KindIdentifier             = "identifier"
	KindTypeIdentifier         = "type_identifier"
	KindPropertyIdentifier     = "property_identifier"
	KindPrivatePropertyIdent   = "private_property_identifier"
	KindAccessibilityModifier  = "accessibility_modifier"
	KindArrowFunction          = "arrow_function"
	KindFunctionExpression     = "function_expression"
	KindCallExpression         = "call_expression"
	KindMemberExpression       = "member_expression"
	KindAssignmentExpression   = "assignment_expression"
	KindUpdateExpression       = "update_expression"
	KindReturnStatement        = "return_statement"
	KindThrowStatement         = "throw_statement"
	KindBreakStatement         = "break_statement"
	KindContinueStatement      = "continue_statement"
	KindIfStatement            = "if_statement"
	KindElseClause             = "else_clause"
	KindForStatement           = "for_statement"
	KindForInStatement         = "for_in_statement"
	KindForOfStatement         = "for_of_statement"
	KindWhileStatement         = "while_statement"
	KindDoStatement            = "do_statement"
	KindSwitchStatement        = "switch_statement"
	KindSwitchBody             = "switch_body"
	KindSwitchCase             = "switch_case"
	KindSwitchDefault          = "switch_default"
	KindTryStatement           = "try_statement"
	KindCatchClause            = "catch_clause"
	KindFinallyClause          = "finally_clause"
	KindStatementBlock         = "statement_block"
	KindParenthesizedExpr      = "parenthesized_expression"
	KindExpressionStatement    = "expression_statement"
	KindComment                = "comment"
	KindString                 = "string"
	KindObjectPattern          = "object_pattern"
	KindArrayPattern           = "array_pattern"
	KindShorthandPropertyIdent = "shorthand_property_identifier_pattern"
	KindPair                   = "pair"
	KindSubscriptExpression    = "subscript_expression"
	KindSequenceExpression     = "sequence_expression"
	KindDecorator              = "decorator"
)
