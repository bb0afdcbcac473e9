package dbc

import "github.com/jjalle/godbc/pkg/dbc/dbcerr"

func newSyntaxError(line, col int, format string, args ...any) error {
	return dbcerr.New(dbcerr.SyntaxError, line, col, format, args...)
}

func newDuplicateEntity(line, col int, format string, args ...any) error {
	return dbcerr.New(dbcerr.DuplicateEntity, line, col, format, args...)
}

func newUnresolvedReference(line, col int, format string, args ...any) error {
	return dbcerr.New(dbcerr.UnresolvedReference, line, col, format, args...)
}

func newUnexpectedToken(line, col int, format string, args ...any) error {
	return dbcerr.New(dbcerr.UnexpectedToken, line, col, format, args...)
}

func newTypeMismatch(line, col int, format string, args ...any) error {
	return dbcerr.New(dbcerr.TypeMismatch, line, col, format, args...)
}

func newIoError(line, col int, format string, args ...any) error {
	return dbcerr.New(dbcerr.IoError, line, col, format, args...)
}

// Error kinds re-exported for callers that want to classify a failure
// returned by ParseText/ParseFile without importing dbcerr directly.
const (
	KindSyntaxError          = dbcerr.SyntaxError
	KindDuplicateEntity      = dbcerr.DuplicateEntity
	KindUnresolvedReference  = dbcerr.UnresolvedReference
	KindUnexpectedToken      = dbcerr.UnexpectedToken
	KindTypeMismatch         = dbcerr.TypeMismatch
	KindIoError              = dbcerr.IoError
)

// AsError reports whether err is a dbcerr.Error of the given kind.
func AsError(err error, kind dbcerr.Kind) (*dbcerr.Error, bool) {
	return dbcerr.As(err, kind)
}
