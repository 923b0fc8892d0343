package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"yamdb/internal/http-api/models"
)

// codeLength is the number of hex characters mailed to the user.
const codeLength = 20

// ConfirmationCodes issues and checks email confirmation codes. Nothing is
// stored: a code is an HMAC over the mutable state of the account, so any
// change to that state (role, email, username, the update timestamp)
// invalidates every code issued before it.
type ConfirmationCodes struct {
	key []byte
}

func NewConfirmationCodes(masterSecret string) (*ConfirmationCodes, error) {
	key, err := DeriveKey([]byte(masterSecret), purposeConfirmationCode)
	if err != nil {
		return nil, err
	}
	return &ConfirmationCodes{key: key}, nil
}

// Make returns the code for the current state of user.
func (c *ConfirmationCodes) Make(user *models.User) string {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(codeInput(user)))
	return hex.EncodeToString(mac.Sum(nil))[:codeLength]
}

// Check recomputes the code and compares it in constant time.
func (c *ConfirmationCodes) Check(user *models.User, code string) bool {
	if user == nil || len(code) != codeLength {
		return false
	}
	return hmac.Equal([]byte(c.Make(user)), []byte(strings.ToLower(code)))
}

func codeInput(user *models.User) string {
	// Microseconds: postgres timestamps drop the nanoseconds.
	return strings.Join([]string{
		user.ID,
		user.Username,
		user.Email,
		user.Role.String(),
		strconv.FormatBool(user.IsSuperuser),
		strconv.FormatInt(user.UpdatedAt.UnixMicro(), 10),
	}, "|")
}
