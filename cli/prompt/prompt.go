// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/manifoldco/promptui"

	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/utils"
)

var (
	ErrInputEmpty          = errors.New("input is empty")
	ErrInputTooLarge       = errors.New("input is too large")
	ErrInvalidChoice       = errors.New("invalid choice")
	ErrIndexOutOfRange     = errors.New("index out-of-range")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Address prompts for a bech32 address.
func Address(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			_, err := codec.ParseAddressBech32(consts.HRP, strings.TrimSpace(input))
			return err
		},
	}
	recipient, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.ParseAddressBech32(consts.HRP, strings.TrimSpace(recipient))
}

// ProgramID prompts for a base58 program ID. An empty input returns
// [codec.EmptyAddress].
func ProgramID(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label + " (empty for default)",
		Validate: func(input string) error {
			input = strings.TrimSpace(input)
			if len(input) == 0 {
				return nil
			}
			_, err := codec.ParseProgramID(input)
			return err
		},
	}
	rawID, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	rawID = strings.TrimSpace(rawID)
	if len(rawID) == 0 {
		return codec.EmptyAddress, nil
	}
	return codec.ParseProgramID(rawID)
}

func String(label string, minLen int, maxLen int) (string, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) < minLen {
				return ErrInputEmpty
			}
			if len(input) > maxLen {
				return ErrInputTooLarge
			}
			return nil
		},
	}
	text, err := promptText.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Amount prompts for a token amount and returns it in lamports.
func Amount(
	label string,
	balance uint64,
	f func(input uint64) error,
) (uint64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			amount, err := utils.ParseBalance(input)
			if err != nil {
				return err
			}
			if amount > balance {
				return ErrInsufficientBalance
			}
			if f != nil {
				return f(amount)
			}
			return nil
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	rawAmount = strings.TrimSpace(rawAmount)
	return utils.ParseBalance(rawAmount)
}

func Uint(
	label string,
	maxValue uint64,
) (uint64, error) {
	stringToUint := func(input string, maxValue uint64) (uint64, error) {
		input = strings.TrimSpace(input)

		if len(input) == 0 {
			return 0, ErrInputEmpty
		}
		amount, err := strconv.ParseUint(input, 10, 64)
		if err != nil {
			return 0, err
		}
		if amount > maxValue {
			return 0, fmt.Errorf("%d must be <= %d", amount, maxValue)
		}
		return amount, nil
	}

	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := stringToUint(input, maxValue)
			return err
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return stringToUint(rawAmount, maxValue)
}

func Float(
	label string,
	maxValue float64,
) (float64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			amount, err := strconv.ParseFloat(input, 64)
			if err != nil {
				return err
			}
			if amount <= 0 {
				return fmt.Errorf("%f must be > 0", amount)
			}
			if amount > maxValue {
				return fmt.Errorf("%f must be <= %f", amount, maxValue)
			}
			return nil
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	rawAmount = strings.TrimSpace(rawAmount)
	return strconv.ParseFloat(rawAmount, 64)
}

func Continue() (bool, error) {
	promptText := promptui.Prompt{
		Label: "continue (y/n)",
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			lower := strings.ToLower(input)
			if lower == "y" || lower == "n" {
				return nil
			}
			return ErrInvalidChoice
		},
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	cont := strings.ToLower(rawContinue)
	if cont == "n" {
		utils.Outf("{{red}}exiting...{{/}}\n")
		return false, nil
	}
	return true, nil
}

func ID(label string) (ids.ID, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			_, err := ids.FromString(input)
			return err
		},
	}
	rawID, err := promptText.Run()
	if err != nil {
		return ids.Empty, err
	}
	rawID = strings.TrimSpace(rawID)
	return ids.FromString(rawID)
}
