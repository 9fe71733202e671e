package identifier

import (
	"crypto/md5"
	"encoding/hex"
)

// Length is the number of hex characters in a patient identifier.
const Length = 7

// Generate derives a stable identifier from the three identity fields of a
// patient. The fields are concatenated without a delimiter, hashed with MD5
// (collision avoidance, not security) and truncated to Length hex characters.
//
// Two patients with identical identity fields always produce the same
// identifier. That collision is the uniqueness check, not a defect.
func Generate(firstName, lastName, dob string) string {
	sum := md5.Sum([]byte(firstName + lastName + dob))
	return hex.EncodeToString(sum[:])[:Length]
}
