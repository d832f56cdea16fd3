// Package diagcache is the embedded code catalog backing `tsz explain
// <code>`: a tiny in-process SQLite database (modernc.org/sqlite, pure Go,
// no cgo) mapping a diagnostic code to its category and a one-line
// human-readable template. It is not an incremental-compilation cache —
// nothing here is invalidated by a source edit; the table is static and
// each Open call seeds a fresh in-memory database from it.
package diagcache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
)

// Entry is one row of the code catalog.
type Entry struct {
	Code     diagnostics.ErrorCode
	Category string
	Template string
}

// staticTable is the catalog's seed data: a subset of the codes
// diagnostics.go defines, each with a short human description of what it
// means. It covers the codes named in spec.md §4.5/§6 plus part of the
// rest of the checker's diagnostic surface; codes without a row here are
// not in the catalog.
var staticTable = []Entry{
	{diagnostics.ErrCannotFindName, "error", "Cannot find name '%s'."},
	{diagnostics.ErrTypeNotAssignable, "error", "Type '%s' is not assignable to type '%s'."},
	{diagnostics.ErrArgumentNotAssignable, "error", "Argument of type '%s' is not assignable to parameter of type '%s'."},
	{diagnostics.ErrPropertyDoesNotExist, "error", "Property '%s' does not exist on type '%s'."},
	{diagnostics.ErrDuplicateIdentifier, "error", "Duplicate identifier '%s'."},
	{diagnostics.ErrObjectPossiblyUndefined, "error", "Object is possibly 'undefined'."},
	{diagnostics.ErrObjectPossiblyNull, "error", "Object is possibly 'null'."},
	{diagnostics.ErrObjectPossiblyNullOrUndefined, "error", "Object is possibly 'null' or 'undefined'."},
	{diagnostics.ErrObjectPossiblyNullStrict, "error", "'%s' is possibly 'null'."},
	{diagnostics.ErrObjectPossiblyUndefinedStrict, "error", "'%s' is possibly 'undefined'."},
	{diagnostics.ErrVariableImplicitlyAny, "error", "Variable '%s' implicitly has an 'any' type."},
	{diagnostics.ErrParameterImplicitlyAny, "error", "Parameter '%s' implicitly has an 'any' type."},
	{diagnostics.ErrNoOverloadMatches, "error", "No overload matches this call."},
	{diagnostics.ErrNotAllCodePathsReturn, "error", "Not all code paths return a value."},
	{diagnostics.ErrModuleHasNoExportedMember, "error", "Module has no exported member '%s'."},
	{diagnostics.ErrCannotFindModule, "error", "Cannot find module '%s'."},
	{diagnostics.ErrPropertyHasNoInitializer, "error", "Property has no initializer and is not definitely assigned in the constructor."},
	{diagnostics.ErrInternal, "internal error", "Internal error: %s."},
}

// Catalog is an open handle onto the populated catalog database.
type Catalog struct {
	db *sql.DB
}

// Open creates an in-memory SQLite database and populates it from
// staticTable. Every tsz process that needs `explain` opens its own
// private instance — the catalog is read-only after Open returns.
func Open() (*Catalog, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening diagcache: %w", err)
	}
	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	if err := c.seed(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Catalog) migrate() error {
	_, err := c.db.Exec(`
		CREATE TABLE diagnostic_codes (
			code     INTEGER PRIMARY KEY,
			category TEXT NOT NULL,
			template TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrating diagcache schema: %w", err)
	}
	return nil
}

func (c *Catalog) seed() error {
	stmt, err := c.db.Prepare(`INSERT INTO diagnostic_codes (code, category, template) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing diagcache seed: %w", err)
	}
	defer stmt.Close()
	for _, e := range staticTable {
		if _, err := stmt.Exec(int(e.Code), e.Category, e.Template); err != nil {
			return fmt.Errorf("seeding diagcache code %d: %w", e.Code, err)
		}
	}
	return nil
}

// Lookup returns the catalog entry for code, or ok=false if the code is
// unknown to the catalog (which is not the same as "not a real tsc code" —
// it just means this build's staticTable hasn't been taught about it yet).
func (c *Catalog) Lookup(code diagnostics.ErrorCode) (Entry, bool, error) {
	row := c.db.QueryRow(`SELECT code, category, template FROM diagnostic_codes WHERE code = ?`, int(code))
	var e Entry
	var rawCode int
	if err := row.Scan(&rawCode, &e.Category, &e.Template); err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("looking up code %d: %w", code, err)
	}
	e.Code = diagnostics.ErrorCode(rawCode)
	return e, true, nil
}

// Close releases the catalog's database handle.
func (c *Catalog) Close() error {
	return c.db.Close()
}
