package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCnfValidatorAcceptsDefaults(t *testing.T) {
	conf := defaultConfig()
	assert.NoError(t, NewCnfValidator(&conf).Validate())
}

func TestCnfValidatorRejectsBadPrecedence(t *testing.T) {
	conf := defaultConfig()
	conf.Sync.Precedence = "newest-wins"
	assert.Error(t, NewCnfValidator(&conf).Validate())
}

func TestCnfValidatorRejectsBadLogLevel(t *testing.T) {
	conf := defaultConfig()
	conf.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(&conf).Validate())
}

func TestCnfValidatorRejectsZeroCap(t *testing.T) {
	conf := defaultConfig()
	conf.Prayer.MaxMomentsPerDay = 0
	assert.Error(t, NewCnfValidator(&conf).Validate())
}

func TestCnfValidatorRejectsMissingStoragePath(t *testing.T) {
	conf := defaultConfig()
	conf.Storage.PrimaryPath = ""
	assert.Error(t, NewCnfValidator(&conf).Validate())
}
