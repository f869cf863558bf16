package gazetteer

import "errors"

// Construction errors. Queries never fail: an unknown code or ID resolves to
// the sentinel. These errors mean the static tables are corrupt and the
// Gazetteer refuses to serve them.
var (
	ErrMalformedRecord  = errors.New("malformed record")
	ErrDuplicateCode    = errors.New("duplicate code")
	ErrDuplicateID      = errors.New("duplicate external ID")
	ErrInvalidReference = errors.New("invalid reference")
	ErrCorruptRelation  = errors.New("corrupt relation")
	ErrSnapshotVersion  = errors.New("unsupported snapshot version")
)
