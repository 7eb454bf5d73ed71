package domain

import (
	"hash/fnv"
	"strconv"
	"strings"

	"payline-connector/pkg/apperror"
)

// Credentials identify a merchant account on the gateway.
type Credentials struct {
	merchantID     string
	accessKey      string
	contractNumber string
	environment    Environment
}

// NewCredentials validates and builds an immutable credential set.
func NewCredentials(merchantID, accessKey, contractNumber string, env Environment) (Credentials, error) {
	merchantID = strings.TrimSpace(merchantID)
	accessKey = strings.TrimSpace(accessKey)
	contractNumber = strings.TrimSpace(contractNumber)

	switch {
	case merchantID == "":
		return Credentials{}, apperror.ErrMissingCredentials("merchant id")
	case accessKey == "":
		return Credentials{}, apperror.ErrMissingCredentials("access key")
	case contractNumber == "":
		return Credentials{}, apperror.ErrMissingCredentials("contract number")
	}

	if env == "" {
		env = EnvironmentHomologation
	}

	return Credentials{
		merchantID:     merchantID,
		accessKey:      accessKey,
		contractNumber: contractNumber,
		environment:    env,
	}, nil
}

func (c Credentials) MerchantID() string       { return c.merchantID }
func (c Credentials) AccessKey() string        { return c.accessKey }
func (c Credentials) ContractNumber() string   { return c.contractNumber }
func (c Credentials) Environment() Environment { return c.environment }

// CacheKey identifies the credential set without exposing the access key in clear.
func (c Credentials) CacheKey() string {
	return strings.Join([]string{c.merchantID, c.contractNumber, string(c.environment), fingerprint(c.accessKey)}, "|")
}

func fingerprint(s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return strconv.FormatUint(h.Sum64(), 16)
}
