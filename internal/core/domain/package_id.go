package domain

import (
	"encoding/hex"
	"strings"

	"go.trai.ch/zerr"
)

// AddressLength is the byte length of an on-chain address.
const AddressLength = 32

// PackageID is the on-chain address of a package.
type PackageID [AddressLength]byte

// ParsePackageID parses an address with or without the 0x prefix.
// Short forms such as "0x2" are left padded with zeros.
func ParsePackageID(s string) (PackageID, error) {
	var id PackageID
	hexPart, err := normalizeHexAddress(s)
	if err != nil {
		return id, zerr.With(err, "package_id", s)
	}
	if _, err := hex.Decode(id[:], []byte(hexPart)); err != nil {
		return id, zerr.With(ErrInvalidPackageID, "package_id", s)
	}
	return id, nil
}

// MustParsePackageID is ParsePackageID for literals known to be valid.
func MustParsePackageID(s string) PackageID {
	id, err := ParsePackageID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// NormalizeAddress renders any accepted address form as 0x followed by 64 lowercase hex digits.
func NormalizeAddress(s string) (string, error) {
	hexPart, err := normalizeHexAddress(s)
	if err != nil {
		return "", err
	}
	return "0x" + hexPart, nil
}

func normalizeHexAddress(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")
	if trimmed == "" || len(trimmed) > AddressLength*2 {
		return "", ErrInvalidPackageID
	}
	for _, r := range trimmed {
		if !isHexDigit(r) {
			return "", ErrInvalidPackageID
		}
	}
	return strings.Repeat("0", AddressLength*2-len(trimmed)) + strings.ToLower(trimmed), nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// String returns the canonical long form of the address.
func (id PackageID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// IsZero reports whether the id is the all-zero address.
func (id PackageID) IsZero() bool {
	return id == PackageID{}
}

// MarshalText encodes the id in its canonical form.
func (id PackageID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText accepts any form ParsePackageID accepts.
func (id *PackageID) UnmarshalText(text []byte) error {
	parsed, err := ParsePackageID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
