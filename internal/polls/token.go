package polls

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"team_polls/internal/db/models"
)

// TokenDeriver turns voter identities into opaque per-poll tokens and marker keys.
type TokenDeriver struct {
	secret []byte
}

func NewTokenDeriver(secret string) *TokenDeriver {
	return &TokenDeriver{secret: []byte(secret)}
}

// VoterToken is HMAC-SHA256(secret, team ‖ poll ‖ voter). Parts are length-prefixed
// so that no two different triples produce the same input.
func (d *TokenDeriver) VoterToken(teamID, pollID, voterID string) string {
	h := hmac.New(sha256.New, d.secret)
	for _, part := range []string{teamID, pollID, voterID} {
		var size [4]byte
		binary.BigEndian.PutUint32(size[:], uint32(len(part)))
		h.Write(size[:])
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// MarkerKey scopes a voter token to what the ballot kind allows once: the poll for
// single-choice, the poll option for multiple-choice. The key is hashed so the marker
// table never holds an option id.
func MarkerKey(token string, kind models.BallotKind, optionID string) string {
	input := token
	if kind == models.BallotKindMultiple {
		input = token + ":" + optionID
	}

	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
