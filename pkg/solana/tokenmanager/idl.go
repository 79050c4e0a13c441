package tokenmanager

import (
	"crypto/ed25519"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/code-payments/code-token-manager/pkg/solana/binary"
)

//go:embed idl/token_manager.json
var defaultIdlJSON []byte

var (
	defaultIdlOnce sync.Once
	defaultIdl     *Idl
)

const maxTypeDepth = 8

// Idl is the Anchor interface description of the program. Only the subset
// this client needs is modeled. Enum variants may carry an explicit "value",
// which is how the program's explicit-discriminant enums are serialized.
type Idl struct {
	Version      string           `json:"version"`
	Name         string           `json:"name"`
	Instructions []IdlInstruction `json:"instructions"`
	Accounts     []IdlTypeDef     `json:"accounts,omitempty"`
	Types        []IdlTypeDef     `json:"types,omitempty"`

	byName          map[string]*compiledInstruction
	byDiscriminator map[string]*compiledInstruction
}

type IdlInstruction struct {
	Name     string       `json:"name"`
	Accounts []IdlAccount `json:"accounts"`
	Args     []IdlField   `json:"args"`
}

type IdlAccount struct {
	Name     string `json:"name"`
	IsMut    bool   `json:"isMut"`
	IsSigner bool   `json:"isSigner"`
}

type IdlField struct {
	Name string  `json:"name"`
	Type IdlType `json:"type"`
}

// IdlType is either a primitive ("u8") or a reference to a named type
// ({"defined": "InitIx"}).
type IdlType struct {
	Primitive string
	Defined   string
}

func (t *IdlType) UnmarshalJSON(data []byte) error {
	var primitive string
	if err := json.Unmarshal(data, &primitive); err == nil {
		t.Primitive = primitive
		return nil
	}

	var defined struct {
		Defined string `json:"defined"`
	}
	if err := json.Unmarshal(data, &defined); err != nil {
		return err
	}
	if len(defined.Defined) == 0 {
		return errors.Wrapf(ErrSchemaMismatch, "unsupported idl type %s", string(data))
	}

	t.Defined = defined.Defined
	return nil
}

type IdlTypeDef struct {
	Name string       `json:"name"`
	Type IdlTypeDefTy `json:"type"`
}

type IdlTypeDefTy struct {
	Kind     string           `json:"kind"`
	Fields   []IdlField       `json:"fields,omitempty"`
	Variants []IdlEnumVariant `json:"variants,omitempty"`
}

type IdlEnumVariant struct {
	Name  string `json:"name"`
	Value *uint8 `json:"value,omitempty"`
}

type argKind uint8

const (
	argKindU8 argKind = iota
	argKindU64
	argKindPublicKey
	argKindEnum
)

// argSlot is one leaf of an instruction's flattened argument list.
type argSlot struct {
	path     string
	kind     argKind
	enumName string
	variants map[uint8]struct{}
}

func (s *argSlot) size() int {
	switch s.kind {
	case argKindU64:
		return 8
	case argKindPublicKey:
		return ed25519.PublicKeySize
	default:
		return 1
	}
}

type compiledInstruction struct {
	name          string
	discriminator []byte
	accounts      []IdlAccount
	args          []argSlot
	argsSize      int
}

// DefaultIdl returns the bundled IDL for the deployed program.
func DefaultIdl() *Idl {
	defaultIdlOnce.Do(func() {
		idl, err := LoadIdl(defaultIdlJSON)
		if err != nil {
			panic(err)
		}
		defaultIdl = idl
	})
	return defaultIdl
}

// LoadIdl parses and validates an Anchor IDL document.
func LoadIdl(data []byte) (*Idl, error) {
	var idl Idl
	if err := json.Unmarshal(data, &idl); err != nil {
		return nil, errors.Wrap(err, "error parsing idl")
	}

	if err := idl.compile(); err != nil {
		return nil, err
	}
	return &idl, nil
}

// Instruction returns the declared schema for the named instruction.
func (idl *Idl) Instruction(name string) (IdlInstruction, bool) {
	for _, ix := range idl.Instructions {
		if ix.Name == name {
			return ix, true
		}
	}
	return IdlInstruction{}, false
}

func (idl *Idl) instruction(name string) (*compiledInstruction, bool) {
	ix, ok := idl.byName[name]
	return ix, ok
}

func (idl *Idl) instructionByDiscriminator(discriminator []byte) (*compiledInstruction, bool) {
	ix, ok := idl.byDiscriminator[string(discriminator)]
	return ix, ok
}

func (idl *Idl) compile() error {
	typeDefs := make(map[string]IdlTypeDef)
	for _, typeDef := range idl.Types {
		if _, ok := typeDefs[typeDef.Name]; ok {
			return errors.Wrapf(ErrSchemaMismatch, "duplicate type %s", typeDef.Name)
		}
		typeDefs[typeDef.Name] = typeDef
	}

	idl.byName = make(map[string]*compiledInstruction)
	idl.byDiscriminator = make(map[string]*compiledInstruction)

	for _, ix := range idl.Instructions {
		if _, ok := idl.byName[ix.Name]; ok {
			return errors.Wrapf(ErrSchemaMismatch, "duplicate instruction %s", ix.Name)
		}

		compiled := &compiledInstruction{
			name:          ix.Name,
			discriminator: instructionDiscriminator(ix.Name),
			accounts:      ix.Accounts,
		}

		for _, arg := range ix.Args {
			slots, err := flattenArg(typeDefs, arg.Name, arg.Type, 0)
			if err != nil {
				return errors.Wrapf(err, "instruction %s", ix.Name)
			}
			compiled.args = append(compiled.args, slots...)
		}
		for i := range compiled.args {
			compiled.argsSize += compiled.args[i].size()
		}

		if other, ok := idl.byDiscriminator[string(compiled.discriminator)]; ok {
			return errors.Wrapf(ErrSchemaMismatch, "discriminator collision between %s and %s", ix.Name, other.name)
		}

		idl.byName[ix.Name] = compiled
		idl.byDiscriminator[string(compiled.discriminator)] = compiled
	}

	return nil
}

// flattenArg expands an argument into its leaves in Borsh order. Structs are
// the concatenation of their fields.
func flattenArg(typeDefs map[string]IdlTypeDef, path string, t IdlType, depth int) ([]argSlot, error) {
	if depth > maxTypeDepth {
		return nil, errors.Wrapf(ErrSchemaMismatch, "type nesting too deep at %s", path)
	}

	if len(t.Defined) == 0 {
		switch t.Primitive {
		case "u8":
			return []argSlot{{path: path, kind: argKindU8}}, nil
		case "u64":
			return []argSlot{{path: path, kind: argKindU64}}, nil
		case "publicKey":
			return []argSlot{{path: path, kind: argKindPublicKey}}, nil
		}
		return nil, errors.Wrapf(ErrSchemaMismatch, "unsupported primitive %q at %s", t.Primitive, path)
	}

	typeDef, ok := typeDefs[t.Defined]
	if !ok {
		return nil, errors.Wrapf(ErrSchemaMismatch, "undefined type %s at %s", t.Defined, path)
	}

	switch typeDef.Type.Kind {
	case "struct":
		var slots []argSlot
		for _, field := range typeDef.Type.Fields {
			fieldSlots, err := flattenArg(typeDefs, path+"."+field.Name, field.Type, depth+1)
			if err != nil {
				return nil, err
			}
			slots = append(slots, fieldSlots...)
		}
		return slots, nil
	case "enum":
		if len(typeDef.Type.Variants) == 0 || len(typeDef.Type.Variants) > 256 {
			return nil, errors.Wrapf(ErrSchemaMismatch, "enum %s has an invalid variant count", typeDef.Name)
		}

		variants := make(map[uint8]struct{})
		for i, variant := range typeDef.Type.Variants {
			value := uint8(i)
			if variant.Value != nil {
				value = *variant.Value
			}
			if _, ok := variants[value]; ok {
				return nil, errors.Wrapf(ErrSchemaMismatch, "enum %s reuses value %d", typeDef.Name, value)
			}
			variants[value] = struct{}{}
		}

		return []argSlot{{
			path:     path,
			kind:     argKindEnum,
			enumName: typeDef.Name,
			variants: variants,
		}}, nil
	}

	return nil, errors.Wrapf(ErrSchemaMismatch, "unsupported type kind %q for %s", typeDef.Type.Kind, typeDef.Name)
}

func (s *argSlot) put(dst []byte, v interface{}, offset *int) error {
	switch s.kind {
	case argKindU8:
		var raw uint8
		switch typed := v.(type) {
		case uint8:
			raw = typed
		case EnumValue:
			// IDLs that declare enum tags as plain u8
			raw = typed.Value()
		default:
			return errors.Wrapf(ErrSchemaMismatch, "%s: expected u8, got %T", s.path, v)
		}
		binary.PutUint8(dst, raw, offset)
	case argKindU64:
		typed, ok := v.(uint64)
		if !ok {
			return errors.Wrapf(ErrSchemaMismatch, "%s: expected u64, got %T", s.path, v)
		}
		binary.PutUint64(dst, typed, offset)
	case argKindPublicKey:
		typed, ok := v.(ed25519.PublicKey)
		if !ok || len(typed) != ed25519.PublicKeySize {
			return errors.Wrapf(ErrSchemaMismatch, "%s: expected publicKey, got %T", s.path, v)
		}
		binary.PutKey32(dst, typed, offset)
	case argKindEnum:
		var raw uint8
		switch typed := v.(type) {
		case EnumValue:
			if typed.EnumName() != s.enumName {
				return errors.Wrapf(ErrSchemaMismatch, "%s: expected %s, got %s", s.path, s.enumName, typed.EnumName())
			}
			raw = typed.Value()
		case uint8:
			raw = typed
		default:
			return errors.Wrapf(ErrSchemaMismatch, "%s: expected %s, got %T", s.path, s.enumName, v)
		}

		if _, ok := s.variants[raw]; !ok {
			return errors.Wrapf(ErrSchemaMismatch, "%s: %d is not a valid %s", s.path, raw, s.enumName)
		}
		binary.PutUint8(dst, raw, offset)
	}

	return nil
}

func (s *argSlot) get(src []byte, offset *int) (interface{}, error) {
	switch s.kind {
	case argKindU64:
		var v uint64
		binary.GetUint64(src, &v, offset)
		return v, nil
	case argKindPublicKey:
		var v ed25519.PublicKey
		binary.GetKey32(src, &v, offset)
		return v, nil
	case argKindEnum:
		var v uint8
		binary.GetUint8(src, &v, offset)
		if _, ok := s.variants[v]; !ok {
			return nil, errors.Wrapf(ErrSchemaMismatch, "%s: %d is not a valid %s", s.path, v, s.enumName)
		}
		return toEnumValue(s.enumName, v), nil
	}

	var v uint8
	binary.GetUint8(src, &v, offset)
	return v, nil
}
