package domain

import (
	"encoding/json"
	"strings"
)

// Ability is a capability tag attached to a struct or a type parameter.
type Ability uint8

const (
	// AbilityCopy allows values to be copied.
	AbilityCopy Ability = 1 << iota
	// AbilityDrop allows values to be dropped.
	AbilityDrop
	// AbilityStore allows values to be stored inside other values in global storage.
	AbilityStore
	// AbilityKey allows values to be used as a key for global storage.
	AbilityKey
)

// allAbilities lists abilities in canonical rendering order.
var allAbilities = [...]Ability{AbilityCopy, AbilityDrop, AbilityStore, AbilityKey}

// String returns the lowercase Move keyword of the ability.
func (a Ability) String() string {
	switch a {
	case AbilityCopy:
		return "copy"
	case AbilityDrop:
		return "drop"
	case AbilityStore:
		return "store"
	case AbilityKey:
		return "key"
	default:
		return "unknown"
	}
}

// ParseAbility maps an ability token in any case ("Copy", "copy", "COPY") to an Ability.
func ParseAbility(token string) (Ability, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "copy":
		return AbilityCopy, true
	case "drop":
		return AbilityDrop, true
	case "store":
		return AbilityStore, true
	case "key":
		return AbilityKey, true
	default:
		return 0, false
	}
}

// AbilitySet is an order independent set of abilities.
// The zero value is the empty set.
type AbilitySet uint8

// abilityMask covers every defined ability bit.
const abilityMask = AbilitySet(AbilityCopy | AbilityDrop | AbilityStore | AbilityKey)

// NewAbilitySet builds a set from the given abilities.
func NewAbilitySet(abilities ...Ability) AbilitySet {
	var s AbilitySet
	for _, a := range abilities {
		s = s.With(a)
	}
	return s
}

// AbilitySetFromBits converts a Move bytecode ability bit mask into a set.
// It reports false when the mask carries bits outside the four defined abilities.
func AbilitySetFromBits(bits uint64) (AbilitySet, bool) {
	if bits&^uint64(abilityMask) != 0 {
		return 0, false
	}
	return AbilitySet(bits), true
}

// Has reports whether a is in the set.
func (s AbilitySet) Has(a Ability) bool {
	return s&AbilitySet(a) != 0
}

// With returns a copy of the set including a.
func (s AbilitySet) With(a Ability) AbilitySet {
	return s | AbilitySet(a)
}

// IsEmpty reports whether the set holds no abilities.
func (s AbilitySet) IsEmpty() bool {
	return s&abilityMask == 0
}

// Abilities returns the members in canonical order.
func (s AbilitySet) Abilities() []Ability {
	out := make([]Ability, 0, len(allAbilities))
	for _, a := range allAbilities {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Tokens returns the lowercase member names in canonical order.
func (s AbilitySet) Tokens() []string {
	abilities := s.Abilities()
	out := make([]string, len(abilities))
	for i, a := range abilities {
		out[i] = a.String()
	}
	return out
}

// String renders the set as "{copy, drop}".
func (s AbilitySet) String() string {
	return "{" + strings.Join(s.Tokens(), ", ") + "}"
}

// MarshalJSON encodes the set as a JSON array of tokens in canonical order.
func (s AbilitySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Tokens())
}

// UnmarshalJSON decodes a JSON array of ability tokens.
func (s *AbilitySet) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	var set AbilitySet
	for _, tok := range tokens {
		a, ok := ParseAbility(tok)
		if !ok {
			return ErrUnknownAbilityToken
		}
		set = set.With(a)
	}
	*s = set
	return nil
}
