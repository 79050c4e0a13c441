package tokenmanager

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/code-payments/code-token-manager/pkg/config"
	"github.com/code-payments/code-token-manager/pkg/config/env"
	"github.com/code-payments/code-token-manager/pkg/config/memory"
	"github.com/code-payments/code-token-manager/pkg/config/wrapper"
)

const (
	envConfigPrefix = "TOKEN_MANAGER_"

	ProgramAddressConfigEnvName = envConfigPrefix + "PROGRAM_ADDRESS"

	IdlPathConfigEnvName = envConfigPrefix + "IDL_PATH"
	defaultIdlPath       = "" // bundled idl
)

type conf struct {
	programAddress config.PublicKey
	idlPath        config.String
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			programAddress: env.NewPublicKeyConfig(ProgramAddressConfigEnvName, PROGRAM_ID),
			idlPath:        env.NewStringConfig(IdlPathConfigEnvName, defaultIdlPath),
		}
	}
}

type testOverrides struct {
	programAddress string
	idlPath        string
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			programAddress: wrapper.NewPublicKeyConfig(memory.NewConfig(nilIfEmpty(overrides.programAddress)), PROGRAM_ID),
			idlPath:        wrapper.NewStringConfig(memory.NewConfig(nilIfEmpty(overrides.idlPath)), defaultIdlPath),
		}
	}
}

// NewProgramFromConfig resolves the program address and IDL once and returns
// the resulting Program. Later config changes don't affect it.
func NewProgramFromConfig(ctx context.Context, configProvider ConfigProvider) (*Program, error) {
	conf := configProvider()

	programAddress, err := conf.programAddress.GetSafe(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error getting program address")
	}

	idl := DefaultIdl()

	idlPath, err := conf.idlPath.GetSafe(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error getting idl path")
	}
	if len(idlPath) > 0 {
		data, err := os.ReadFile(idlPath)
		if err != nil {
			return nil, errors.Wrap(err, "error reading idl")
		}

		idl, err = LoadIdl(data)
		if err != nil {
			return nil, err
		}
	}

	return NewProgram(programAddress, idl)
}

func nilIfEmpty(value string) interface{} {
	if len(value) == 0 {
		return nil
	}
	return value
}
