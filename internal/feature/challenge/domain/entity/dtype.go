// Package entity defines the domain models for the challenge feature.
package entity

// DType is the storage type tag of a frame column or index.
// Tags follow numpy's array-protocol spelling so stored results stay comparable
// with the ones produced by the notebook harness.
type DType string

const (
	DTypeDatetime64NS DType = "<M8[ns]"
	DTypeInt64        DType = "<i8"
	DTypeFloat64      DType = "<f8"
	DTypeObject       DType = "|O"
)

// datetimeAliases lists alternative spellings of datetime64[ns].
var datetimeAliases = map[DType]struct{}{
	DTypeDatetime64NS: {},
	"datetime64[ns]":  {},
	"M8[ns]":          {},
}

// IsDatetimeNS reports whether d denotes a nanosecond-precision timestamp.
func (d DType) IsDatetimeNS() bool {
	_, ok := datetimeAliases[d]
	return ok
}

func (d DType) String() string {
	return string(d)
}
