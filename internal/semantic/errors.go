package semantic

import "fmt"

// CompilerError identifies a semantic error. Codes are stable identifiers;
// rendering is a host concern.
type CompilerError int

const (
	// flow
	SyntaxError CompilerError = iota
	ExpectedDeclaration

	// this / members
	IllegalUseOfThis
	InvalidUseOfDelegatedConstructor
	NotDataMember
	InheritedDataMember
	DataMemberAlreadyHasInitializer
	NoDelegatingConstructorFound
	CouldNotFindValidBaseConstructor

	// initialization
	ReferencesMustBeInitialized
	EnumerationsMustBeInitialized
	FunctionVariablesMustBeInitialized
	VariableCannotBeDefaultConstructed
	ClassHasDeletedDefaultCtor
	ReturnStatementWithoutValue
	ReturnStatementWithValue
	AutoMustBeUsedWithAssignment
	NarrowingConversionInBraceInitialization
	TooManyArgumentInVariableInitialization

	// lookup
	InvalidTypeName
	AmbiguousFunctionName
	TemplateNamesAreNotExpressions
	TypeNameInExpression
	NamespaceNameInExpression
	NoSuchMember
	NoSuchCallee

	// overload resolution
	CouldNotConvert
	CouldNotFindCommonType
	CouldNotFindValidConstructor
	CouldNotFindValidOperator
	CouldNotFindValidMemberFunction
	CouldNotFindValidCallOperator
	CouldNotFindValidSubscriptOperator
	CouldNotFindValidLiteralOperator
	CouldNotFindValidCallee
	CouldNotResolveOperatorName
	InvalidParamCountInOperatorOverload
	OpOverloadMustBeDeclaredAsMember

	// inheritance / defaulted members
	FunctionCannotBeDefaulted
	ParentHasNoDefaultConstructor
	ParentHasDeletedDefaultConstructor
	ParentHasNoCopyConstructor
	ParentHasDeletedCopyConstructor
	DataMemberIsNotCopyable
	ParentHasDeletedMoveConstructor
	DataMemberIsNotMovable
	ParentHasNoAssignmentOperator
	ParentHasDeletedAssignmentOperator
	DataMemberHasNoAssignmentOperator
	DataMemberHasDeletedAssignmentOperator
	DataMemberIsReferenceAndCannotBeAssigned
	ObjectHasNoDestructor
	CallToDeletedFunction
	InvalidBaseClass

	// lambdas and captures
	CannotCaptureThis
	UnknownCaptureName
	CannotCaptureNonCopyable
	SomeLocalsCannotBeCaptured
	CannotCaptureByValueAndByRef
	LambdaMustBeCaptureless
	CannotDeduceLambdaReturnType

	// templates
	InvalidTemplateArgument
	InvalidLiteralTemplateArgument
	MissingNonDefaultedTemplateParameter
	CouldNotFindPrimaryClassTemplate
	CouldNotFindPrimaryFunctionTemplate

	// modules
	UnknownModuleName
	UnknownSubModuleName
	ModuleImportationFailed
	InvalidNameInUsingDirective

	// misc
	InaccessibleMember
	FriendMustBeAClass
	InvalidCharacterLiteral
	GlobalVariablesCannotBeAuto
	GlobalVariablesMustBeInitialized
	GlobalVariablesMustBeAssigned
	NamespaceDeclarationCannotAppearAtThisLevel
	LiteralOperatorNotInNamespace
	DataMemberCannotBeAuto
	MissingStaticInitialization
	InvalidStaticInitialization
	FailedToInitializeStaticVariable
	InvalidUseOfDefaultArgument
	ArrayElementNotConvertible
	ArraySubscriptOnNonObject
	UnknownTypeInBraceInitialization
	InvalidUseOfConstKeyword
	InvalidUseOfExplicitKeyword
	InvalidUseOfStaticKeyword
	InvalidUseOfVirtualKeyword
)

var compilerErrorNames = map[CompilerError]string{
	SyntaxError:                      "SyntaxError",
	ExpectedDeclaration:              "ExpectedDeclaration",
	IllegalUseOfThis:                 "IllegalUseOfThis",
	InvalidUseOfDelegatedConstructor: "InvalidUseOfDelegatedConstructor",
	NotDataMember:                    "NotDataMember",
	InheritedDataMember:              "InheritedDataMember",
	DataMemberAlreadyHasInitializer:  "DataMemberAlreadyHasInitializer",
	NoDelegatingConstructorFound:     "NoDelegatingConstructorFound",
	CouldNotFindValidBaseConstructor: "CouldNotFindValidBaseConstructor",

	ReferencesMustBeInitialized:              "ReferencesMustBeInitialized",
	EnumerationsMustBeInitialized:            "EnumerationsMustBeInitialized",
	FunctionVariablesMustBeInitialized:       "FunctionVariablesMustBeInitialized",
	VariableCannotBeDefaultConstructed:       "VariableCannotBeDefaultConstructed",
	ClassHasDeletedDefaultCtor:               "ClassHasDeletedDefaultCtor",
	ReturnStatementWithoutValue:              "ReturnStatementWithoutValue",
	ReturnStatementWithValue:                 "ReturnStatementWithValue",
	AutoMustBeUsedWithAssignment:             "AutoMustBeUsedWithAssignment",
	NarrowingConversionInBraceInitialization: "NarrowingConversionInBraceInitialization",
	TooManyArgumentInVariableInitialization:  "TooManyArgumentInVariableInitialization",

	InvalidTypeName:                "InvalidTypeName",
	AmbiguousFunctionName:          "AmbiguousFunctionName",
	TemplateNamesAreNotExpressions: "TemplateNamesAreNotExpressions",
	TypeNameInExpression:           "TypeNameInExpression",
	NamespaceNameInExpression:      "NamespaceNameInExpression",
	NoSuchMember:                   "NoSuchMember",
	NoSuchCallee:                   "NoSuchCallee",

	CouldNotConvert:                     "CouldNotConvert",
	CouldNotFindCommonType:              "CouldNotFindCommonType",
	CouldNotFindValidConstructor:        "CouldNotFindValidConstructor",
	CouldNotFindValidOperator:           "CouldNotFindValidOperator",
	CouldNotFindValidMemberFunction:     "CouldNotFindValidMemberFunction",
	CouldNotFindValidCallOperator:       "CouldNotFindValidCallOperator",
	CouldNotFindValidSubscriptOperator:  "CouldNotFindValidSubscriptOperator",
	CouldNotFindValidLiteralOperator:    "CouldNotFindValidLiteralOperator",
	CouldNotFindValidCallee:             "CouldNotFindValidCallee",
	CouldNotResolveOperatorName:         "CouldNotResolveOperatorName",
	InvalidParamCountInOperatorOverload: "InvalidParamCountInOperatorOverload",
	OpOverloadMustBeDeclaredAsMember:    "OpOverloadMustBeDeclaredAsMember",

	FunctionCannotBeDefaulted:                "FunctionCannotBeDefaulted",
	ParentHasNoDefaultConstructor:            "ParentHasNoDefaultConstructor",
	ParentHasDeletedDefaultConstructor:       "ParentHasDeletedDefaultConstructor",
	ParentHasNoCopyConstructor:               "ParentHasNoCopyConstructor",
	ParentHasDeletedCopyConstructor:          "ParentHasDeletedCopyConstructor",
	DataMemberIsNotCopyable:                  "DataMemberIsNotCopyable",
	ParentHasDeletedMoveConstructor:          "ParentHasDeletedMoveConstructor",
	DataMemberIsNotMovable:                   "DataMemberIsNotMovable",
	ParentHasNoAssignmentOperator:            "ParentHasNoAssignmentOperator",
	ParentHasDeletedAssignmentOperator:       "ParentHasDeletedAssignmentOperator",
	DataMemberHasNoAssignmentOperator:        "DataMemberHasNoAssignmentOperator",
	DataMemberHasDeletedAssignmentOperator:   "DataMemberHasDeletedAssignmentOperator",
	DataMemberIsReferenceAndCannotBeAssigned: "DataMemberIsReferenceAndCannotBeAssigned",
	ObjectHasNoDestructor:                    "ObjectHasNoDestructor",
	CallToDeletedFunction:                    "CallToDeletedFunction",
	InvalidBaseClass:                         "InvalidBaseClass",

	CannotCaptureThis:            "CannotCaptureThis",
	UnknownCaptureName:           "UnknownCaptureName",
	CannotCaptureNonCopyable:     "CannotCaptureNonCopyable",
	SomeLocalsCannotBeCaptured:   "SomeLocalsCannotBeCaptured",
	CannotCaptureByValueAndByRef: "CannotCaptureByValueAndByRef",
	LambdaMustBeCaptureless:      "LambdaMustBeCaptureless",
	CannotDeduceLambdaReturnType: "CannotDeduceLambdaReturnType",

	InvalidTemplateArgument:              "InvalidTemplateArgument",
	InvalidLiteralTemplateArgument:       "InvalidLiteralTemplateArgument",
	MissingNonDefaultedTemplateParameter: "MissingNonDefaultedTemplateParameter",
	CouldNotFindPrimaryClassTemplate:     "CouldNotFindPrimaryClassTemplate",
	CouldNotFindPrimaryFunctionTemplate:  "CouldNotFindPrimaryFunctionTemplate",

	UnknownModuleName:           "UnknownModuleName",
	UnknownSubModuleName:        "UnknownSubModuleName",
	ModuleImportationFailed:     "ModuleImportationFailed",
	InvalidNameInUsingDirective: "InvalidNameInUsingDirective",

	InaccessibleMember:                          "InaccessibleMember",
	FriendMustBeAClass:                          "FriendMustBeAClass",
	InvalidCharacterLiteral:                     "InvalidCharacterLiteral",
	GlobalVariablesCannotBeAuto:                 "GlobalVariablesCannotBeAuto",
	GlobalVariablesMustBeInitialized:            "GlobalVariablesMustBeInitialized",
	GlobalVariablesMustBeAssigned:               "GlobalVariablesMustBeAssigned",
	NamespaceDeclarationCannotAppearAtThisLevel: "NamespaceDeclarationCannotAppearAtThisLevel",
	LiteralOperatorNotInNamespace:               "LiteralOperatorNotInNamespace",
	DataMemberCannotBeAuto:                      "DataMemberCannotBeAuto",
	MissingStaticInitialization:                 "MissingStaticInitialization",
	InvalidStaticInitialization:                 "InvalidStaticInitialization",
	FailedToInitializeStaticVariable:            "FailedToInitializeStaticVariable",
	InvalidUseOfDefaultArgument:                 "InvalidUseOfDefaultArgument",
	ArrayElementNotConvertible:                  "ArrayElementNotConvertible",
	ArraySubscriptOnNonObject:                   "ArraySubscriptOnNonObject",
	UnknownTypeInBraceInitialization:            "UnknownTypeInBraceInitialization",
	InvalidUseOfConstKeyword:                    "InvalidUseOfConstKeyword",
	InvalidUseOfExplicitKeyword:                 "InvalidUseOfExplicitKeyword",
	InvalidUseOfStaticKeyword:                   "InvalidUseOfStaticKeyword",
	InvalidUseOfVirtualKeyword:                  "InvalidUseOfVirtualKeyword",
}

func (c CompilerError) String() string {
	if s, ok := compilerErrorNames[c]; ok {
		return s
	}
	return fmt.Sprintf("CompilerError(%d)", int(c))
}

// CompilationFailure aborts the declaration being compiled. The script
// compiler catches it, records a diagnostic and, for InvalidTypeName,
// re-queues the declaration for a later pass.
type CompilationFailure struct {
	Code   CompilerError
	Offset int
	Extra  string
}

func (e *CompilationFailure) Error() string {
	if e.Extra != "" {
		return fmt.Sprintf("%s at offset %d: %s", e.Code, e.Offset, e.Extra)
	}
	return fmt.Sprintf("%s at offset %d", e.Code, e.Offset)
}

// fail builds a CompilationFailure.
func fail(code CompilerError, offset int) *CompilationFailure {
	return &CompilationFailure{Code: code, Offset: offset}
}

// failx builds a CompilationFailure with extra context.
func failx(code CompilerError, offset int, extra string) *CompilationFailure {
	return &CompilationFailure{Code: code, Offset: offset, Extra: extra}
}

// IsRetryable reports whether the failure may resolve on a later pass.
func (e *CompilationFailure) IsRetryable() bool { return e.Code == InvalidTypeName }
