package tokenmanager

// EnumValue is implemented by the typed enumerations declared in the IDL so
// the encoder can check them against the declared variants.
type EnumValue interface {
	EnumName() string
	Value() uint8
}

type TokenManagerKind uint8

const (
	TokenManagerKindUnknown TokenManagerKind = iota
	TokenManagerKindManaged
	TokenManagerKindUnmanaged
	TokenManagerKindEdition
	TokenManagerKindPermissioned
)

func (k TokenManagerKind) EnumName() string { return "TokenManagerKind" }
func (k TokenManagerKind) Value() uint8     { return uint8(k) }

func (k TokenManagerKind) String() string {
	switch k {
	case TokenManagerKindManaged:
		return "managed"
	case TokenManagerKindUnmanaged:
		return "unmanaged"
	case TokenManagerKindEdition:
		return "edition"
	case TokenManagerKindPermissioned:
		return "permissioned"
	}
	return "unknown"
}

type InvalidationType uint8

const (
	InvalidationTypeUnknown InvalidationType = iota
	InvalidationTypeReturn
	InvalidationTypeInvalidate
	InvalidationTypeRelease
	InvalidationTypeReissue
	InvalidationTypeVest
)

func (t InvalidationType) EnumName() string { return "InvalidationType" }
func (t InvalidationType) Value() uint8     { return uint8(t) }

func (t InvalidationType) String() string {
	switch t {
	case InvalidationTypeReturn:
		return "return"
	case InvalidationTypeInvalidate:
		return "invalidate"
	case InvalidationTypeRelease:
		return "release"
	case InvalidationTypeReissue:
		return "reissue"
	case InvalidationTypeVest:
		return "vest"
	}
	return "unknown"
}

type TokenManagerState uint8

const (
	TokenManagerStateInitialized TokenManagerState = iota
	TokenManagerStateIssued
	TokenManagerStateClaimed
	TokenManagerStateInvalidated
)

func (s TokenManagerState) EnumName() string { return "TokenManagerState" }
func (s TokenManagerState) Value() uint8     { return uint8(s) }

func (s TokenManagerState) String() string {
	switch s {
	case TokenManagerStateInitialized:
		return "initialized"
	case TokenManagerStateIssued:
		return "issued"
	case TokenManagerStateClaimed:
		return "claimed"
	case TokenManagerStateInvalidated:
		return "invalidated"
	}
	return "unknown"
}

// toEnumValue maps a raw tag read off the wire back into its Go type.
func toEnumValue(enumName string, v uint8) interface{} {
	switch enumName {
	case TokenManagerKindUnknown.EnumName():
		return TokenManagerKind(v)
	case InvalidationTypeUnknown.EnumName():
		return InvalidationType(v)
	case TokenManagerStateInitialized.EnumName():
		return TokenManagerState(v)
	}
	return v
}
