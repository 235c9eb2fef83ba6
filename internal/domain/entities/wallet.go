package entities

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidWallet is matched by every wallet validation failure
var ErrInvalidWallet = errors.New("invalid wallet address")

// ValidationError describes why a wallet address was rejected
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is makes errors.Is(err, ErrInvalidWallet) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidWallet
}

// ValidateWallet trims and checks a wallet address, returning it in
// lowercase form
func ValidateWallet(input string) (string, error) {
	wallet := strings.TrimSpace(input)
	if wallet == "" {
		return "", &ValidationError{Input: input, Reason: "wallet address is required"}
	}
	if !strings.HasPrefix(wallet, "0x") || len(wallet) < 42 {
		return "", &ValidationError{Input: input, Reason: "wallet address must start with 0x and be at least 42 characters long"}
	}
	if !common.IsHexAddress(wallet) {
		return "", &ValidationError{Input: input, Reason: "wallet address must be 20 bytes of hex"}
	}
	return strings.ToLower(wallet), nil
}
