package codec

import (
	"errors"
	"fmt"

	"github.com/placesync/placesync/internal/model"
)

// ErrMalformedDocument indicates structural corruption in a bookmark
// store: broken markup, a wrong root element, an inconsistent entry
// count. Field-level omissions are never reported through this error;
// they are tolerated or surfaced as Warnings.
var ErrMalformedDocument = errors.New("malformed document")

// Warning records a single entry that was skipped during decode, for
// example a line whose location could not be canonicalized. Warnings
// accumulate alongside the successfully parsed entries; they never abort
// a decode.
type Warning struct {
	// Entry is the offending raw entry as it appeared in the source.
	Entry string
	// Detail explains why the entry was skipped.
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("skipped %q: %s", w.Entry, w.Detail)
}

// Codec translates between a backend's raw store text and the canonical
// bookmark model. Implementations are pure string transforms, isolated
// from file I/O.
type Codec interface {
	// Decode parses raw store text into a deduplicated bookmark list.
	// Entry-level problems come back as warnings; only structural
	// corruption yields an error.
	Decode(data []byte) (model.List, []Warning, error)

	// Encode renders the list in the backend's store format. Output is
	// byte-stable: encoding the same list twice yields identical bytes.
	Encode(list model.List) ([]byte, error)

	// Backend returns the backend this codec handles.
	Backend() model.Backend
}
