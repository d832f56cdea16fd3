// Package diagnostics implements the tsc-numbered diagnostic shape shared
// by the scanner, parser, binder, and checker.
package diagnostics

import (
	"fmt"

	"github.com/mohsen1/tsz-sub030/internal/token"
)

// Category distinguishes the three error-handling tiers described by the
// checker's error design (syntax errors, semantic errors, and internal
// assertion failures) plus a warning category for the 7xxx codes, which
// HasErrors does not count.
type Category int

const (
	CategorySyntax Category = iota
	CategorySemantic
	CategoryInternal
	CategoryWarning
)

func (c Category) String() string {
	switch c {
	case CategorySyntax:
		return "syntax error"
	case CategorySemantic:
		return "error"
	case CategoryInternal:
		return "internal error"
	case CategoryWarning:
		return "warning"
	default:
		return "error"
	}
}

// ErrorCode is a tsc-compatible numeric diagnostic code, rendered as
// "TS<code>" in the wire format.
type ErrorCode int

// Scanner/parser syntax codes.
const (
	ErrUnterminatedString        ErrorCode = 1002
	ErrUnterminatedComment       ErrorCode = 1010
	ErrUnterminatedTemplate      ErrorCode = 1160
	ErrExpressionExpected        ErrorCode = 1109
	ErrDeclarationExpected       ErrorCode = 1146
	ErrIdentifierExpected        ErrorCode = 1003
	ErrExpectedToken             ErrorCode = 1005
	ErrTrailingCommaNotAllowed   ErrorCode = 1009
	ErrInvalidCharacter          ErrorCode = 1127
	ErrTypeExpected              ErrorCode = 1110
	ErrStatementExpected         ErrorCode = 1129
	ErrDigitExpected             ErrorCode = 1124
)

// Binder/checker semantic codes (a representative subset of tsc's catalog,
// matching the numeric codes spec.md names explicitly).
const (
	ErrCannotFindName                       ErrorCode = 2304
	ErrTypeNotAssignable                    ErrorCode = 2322
	ErrArgumentNotAssignable                ErrorCode = 2345
	ErrPropertyDoesNotExist                 ErrorCode = 2339
	ErrDuplicateIdentifier                  ErrorCode = 2300
	ErrCannotRedeclareBlockScoped            ErrorCode = 2451
	ErrObjectPossiblyUndefined               ErrorCode = 2532
	ErrObjectPossiblyNull                    ErrorCode = 2531
	ErrObjectPossiblyNullOrUndefined         ErrorCode = 2533
	ErrUsedBeforeAssigned                    ErrorCode = 2454
	ErrVariableUsedBeforeDeclaration         ErrorCode = 2448
	ErrVariableImplicitlyAny                 ErrorCode = 7005
	ErrParameterImplicitlyAny                ErrorCode = 7006
	ErrUncalledFunctionAsCondition           ErrorCode = 2774
	ErrThisImplicitlyAny                     ErrorCode = 2683
	ErrNoOverloadMatches                     ErrorCode = 2769
	ErrTypeHasNoCallSignatures               ErrorCode = 2349
	ErrCannotInvokePossiblyUndefined         ErrorCode = 2722
	ErrCannotInvokePossiblyNull              ErrorCode = 2721
	ErrNotAllCodePathsReturn                 ErrorCode = 2366
	ErrUnreachableCode                       ErrorCode = 7027
	ErrVariableImplicitlyHasAnyInSomePaths   ErrorCode = 7034
	ErrModuleHasNoExportedMember             ErrorCode = 2305
	ErrCannotFindModule                      ErrorCode = 2307
	ErrTypeInstantiationExcessivelyDeep      ErrorCode = 2321
	ErrCircularDefinition                    ErrorCode = 2456
	ErrConditionalTypeNotAssignableGeneric   ErrorCode = 2344
	ErrIndexSignatureMissing                 ErrorCode = 2352
	ErrExpressionNotCallable                 ErrorCode = 2349
	ErrObjectPossiblyNullStrict               ErrorCode = 18047
	ErrObjectPossiblyUndefinedStrict          ErrorCode = 18048
	ErrGenericRequiresTypeArguments           ErrorCode = 2314
	ErrConstraintNotSatisfied                 ErrorCode = 2344
	ErrConversionMayBeMistake                 ErrorCode = 2352
	ErrPropertyHasNoInitializer               ErrorCode = 2564
)

// Internal assertion tier: the checker reserves 9999 for invariant
// violations it catches rather than crashing on (arena index out of
// range, interner cycle that exceeded its budget, etc.).
const ErrInternal ErrorCode = 9999

// DiagnosticError is one reported diagnostic: a file, a token anchoring
// its span, a numeric code, a category, and a rendered message.
type DiagnosticError struct {
	File     string
	Token    token.Token
	Code     ErrorCode
	Category Category
	Message  string
	// Related carries secondary locations (e.g. "'x' is declared here").
	Related []DiagnosticError
}

// NewError constructs a semantic-tier DiagnosticError with a formatted
// message, mirroring the teacher's diagnostics.NewError(code, token, msg,
// args...) call shape.
func NewError(code ErrorCode, tok token.Token, format string, args ...any) *DiagnosticError {
	return &DiagnosticError{
		Token:    tok,
		Code:     code,
		Category: categoryFor(code),
		Message:  fmt.Sprintf(format, args...),
	}
}

// NewSyntaxError constructs a syntax-tier DiagnosticError.
func NewSyntaxError(code ErrorCode, tok token.Token, format string, args ...any) *DiagnosticError {
	return &DiagnosticError{
		Token:    tok,
		Code:     code,
		Category: CategorySyntax,
		Message:  fmt.Sprintf(format, args...),
	}
}

// NewInternalError constructs the 9999-coded internal-assertion tier
// diagnostic used when the checker catches its own invariant violations
// instead of panicking.
func NewInternalError(tok token.Token, format string, args ...any) *DiagnosticError {
	return &DiagnosticError{
		Token:    tok,
		Code:     ErrInternal,
		Category: CategoryInternal,
		Message:  fmt.Sprintf(format, args...),
	}
}

func categoryFor(code ErrorCode) Category {
	switch {
	case code == ErrInternal:
		return CategoryInternal
	case code >= 1000 && code < 2000:
		return CategorySyntax
	case code >= 7000 && code < 8000:
		return CategoryWarning
	default:
		return CategorySemantic
	}
}

// Error implements the error interface, rendering the tsc wire format:
// "<file>(<line>,<col>): error TS<code>: <message>".
func (e *DiagnosticError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s(%d,%d): error TS%d: %s",
		file, e.Token.Line, e.Token.Column, int(e.Code), e.Message)
}

// dedupKey identifies a diagnostic for the (file, span.start, code)
// deduplication rule spec.md §7 mandates.
func (e *DiagnosticError) dedupKey() string {
	return fmt.Sprintf("%s:%d:%d", e.File, e.Token.Start, e.Code)
}

// Collector accumulates diagnostics for one compilation unit, deduplicating
// by (file, span.start, code), mirroring the teacher walker's errorSet map.
type Collector struct {
	seen  map[string]*DiagnosticError
	order []string
	file  string
}

// NewCollector creates a Collector that stamps File onto diagnostics that
// don't already carry one.
func NewCollector(file string) *Collector {
	return &Collector{seen: make(map[string]*DiagnosticError), file: file}
}

// Add records a diagnostic, overwriting any prior diagnostic with the same
// dedup key (last write wins, matching the teacher's map-assignment
// semantics).
func (c *Collector) Add(err *DiagnosticError) {
	if err == nil {
		return
	}
	if err.File == "" {
		err.File = c.file
	}
	key := err.dedupKey()
	if _, exists := c.seen[key]; !exists {
		c.order = append(c.order, key)
	}
	c.seen[key] = err
}

// AddAll records every diagnostic in errs.
func (c *Collector) AddAll(errs []*DiagnosticError) {
	for _, err := range errs {
		c.Add(err)
	}
}

// Diagnostics returns the deduplicated diagnostics in first-seen order.
func (c *Collector) Diagnostics() []*DiagnosticError {
	result := make([]*DiagnosticError, 0, len(c.order))
	for _, key := range c.order {
		result = append(result, c.seen[key])
	}
	return result
}

// HasErrors reports whether any non-warning diagnostic was collected.
func (c *Collector) HasErrors() bool {
	for _, err := range c.seen {
		if err.Category != CategoryWarning {
			return true
		}
	}
	return false
}
