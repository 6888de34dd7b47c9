// Package economy holds the pure money math of the allowance engine:
// reward lookup, pot splitting, the ledger sign convention and avatar
// stage progression. Everything here is deterministic and side-effect
// free so the rules can be tested without a database.
package economy

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"sprout/internal/domain"
)

var ErrNegativeAmount = errors.New("amount_cents must not be negative")

// rewardTable maps task difficulty to its base payout in cents.
var rewardTable = map[string]int64{
	domain.DifficultyEasy:      50,
	domain.DifficultyMedium:    100,
	domain.DifficultyHard:      200,
	domain.DifficultyLegendary: 400,
}

// RewardCents returns the payout for completing a task: the difficulty
// base multiplied by the task weight. An unknown difficulty is a
// programming error on the caller's side and is returned as an error so
// nothing gets persisted.
func RewardCents(difficulty string, weight int) (int64, error) {
	base, ok := rewardTable[difficulty]
	if !ok {
		return 0, fmt.Errorf("unknown task difficulty %q", difficulty)
	}
	return base * int64(weight), nil
}

// PotSplit is the cents assigned to each wallet pot.
type PotSplit struct {
	Spend  int64 `json:"SPEND"`
	Save   int64 `json:"SAVE"`
	Donate int64 `json:"DONATE"`
}

// Total returns the sum across all three pots.
func (p PotSplit) Total() int64 {
	return p.Spend + p.Save + p.Donate
}

// Get returns the cents for a pot by name.
func (p PotSplit) Get(pot string) int64 {
	switch pot {
	case domain.PotSpend:
		return p.Spend
	case domain.PotSave:
		return p.Save
	case domain.PotDonate:
		return p.Donate
	}
	return 0
}

func (p *PotSplit) set(pot string, cents int64) {
	switch pot {
	case domain.PotSpend:
		p.Spend = cents
	case domain.PotSave:
		p.Save = cents
	case domain.PotDonate:
		p.Donate = cents
	}
}

// SplitByPots allocates amountCents across the three pots by integer
// percentage. Each pot gets floor(amount*percent/100), walking the pots
// in fixed SPEND, SAVE, DONATE order; whatever rounding leaves over is
// added to SPEND so the outputs always sum exactly to amountCents. An
// empty allocation map sends the whole amount to SPEND.
func SplitByPots(amountCents int64, allocations map[string]int) (PotSplit, error) {
	if amountCents < 0 {
		return PotSplit{}, ErrNegativeAmount
	}
	var split PotSplit
	if len(allocations) == 0 {
		split.Spend = amountCents
		return split, nil
	}
	var assigned int64
	for _, pot := range domain.Pots {
		cents := amountCents * int64(allocations[pot]) / 100
		split.set(pot, cents)
		assigned += cents
	}
	split.Spend += amountCents - assigned
	return split, nil
}

// SignedAmountCents applies the ledger sign convention: SPEND
// transactions debit the wallet, everything else credits it. Unknown
// transaction types fall through to positive so that replaying an old
// ledger never fails on a type added later.
func SignedAmountCents(txType string, cents int64) int64 {
	if txType == domain.TxTypeSpend {
		return -cents
	}
	return cents
}

type txMetadata struct {
	PotSplit map[string]any `json:"pot_split"`
}

// ExtractPotSplit re-reads the pot_split stored in a transaction's
// metadata JSON. It never fails: a malformed document, missing keys and
// non-integer values all degrade to zeros (per key) so one corrupt
// record cannot make the ledger unreadable.
func ExtractPotSplit(metadataJSON string) PotSplit {
	var meta txMetadata
	if err := json.Unmarshal([]byte(metadataJSON), &meta); err != nil {
		return PotSplit{}
	}
	var split PotSplit
	for _, pot := range domain.Pots {
		if raw, ok := meta.PotSplit[pot]; ok {
			if f, ok := raw.(float64); ok && f == math.Trunc(f) {
				split.set(pot, int64(f))
			}
		}
	}
	return split
}

// MarshalPotSplit renders the split as transaction metadata JSON.
func MarshalPotSplit(split PotSplit) string {
	b, _ := json.Marshal(map[string]any{"pot_split": map[string]int64{
		domain.PotSpend:  split.Spend,
		domain.PotSave:   split.Save,
		domain.PotDonate: split.Donate,
	}})
	return string(b)
}

// AvatarStage maps a lifetime XP total to the avatar's growth stage.
// Total over all integers; negative XP is stage 1.
func AvatarStage(xpTotal int64) int {
	switch {
	case xpTotal >= 900:
		return 3
	case xpTotal >= 300:
		return 2
	default:
		return 1
	}
}
