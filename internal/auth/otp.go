package auth

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"time"

	"github.com/hugh/otp-auth/internal/database/models"
)

// Purpose selects which OTP slot of a user record is used.
type Purpose string

const (
	PurposeVerify Purpose = "verify"
	PurposeReset  Purpose = "reset"
)

const (
	VerifyOTPTTL = 30 * time.Minute
	ResetOTPTTL  = 15 * time.Minute

	otpMin = 100000
	otpMax = 999999
)

var (
	ErrAlreadyVerified = errors.New("account already verified")
	ErrInvalidOTP      = errors.New("invalid otp")
	ErrOTPExpired      = errors.New("otp expired")
	errUnknownPurpose  = errors.New("unknown otp purpose")
)

func (p Purpose) TTL() time.Duration {
	if p == PurposeReset {
		return ResetOTPTTL
	}
	return VerifyOTPTTL
}

// GenerateOTP draws a six digit code uniformly from [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}

// IssueOTP moves the purpose's slot to pending with code, expiring at
// now + TTL. A verified user cannot be issued a verify code; in that case
// the record is left untouched.
func IssueOTP(u *models.User, p Purpose, code string, now time.Time) error {
	codeField, expiresField, err := otpSlot(u, p)
	if err != nil {
		return err
	}
	if p == PurposeVerify && u.IsAccountVerified {
		return ErrAlreadyVerified
	}

	*codeField = code
	*expiresField = now.Add(p.TTL()).UnixMilli()
	return nil
}

// ConsumeOTP checks code against the purpose's slot and, on success,
// returns the slot to idle. The code comparison runs before the expiry
// check: a wrong code is ErrInvalidOTP even when the slot has expired.
// Expired slots are reported but not cleared.
//
// A successful verify also marks the account verified. A reset leaves the
// password change to the caller, which saves both in one write.
func ConsumeOTP(u *models.User, p Purpose, code string, now time.Time) error {
	codeField, expiresField, err := otpSlot(u, p)
	if err != nil {
		return err
	}

	if *codeField == "" || *codeField != code {
		return ErrInvalidOTP
	}
	if now.UnixMilli() > *expiresField {
		return ErrOTPExpired
	}

	*codeField = ""
	*expiresField = 0
	if p == PurposeVerify {
		u.IsAccountVerified = true
	}
	return nil
}

func otpSlot(u *models.User, p Purpose) (*string, *int64, error) {
	switch p {
	case PurposeVerify:
		return &u.VerifyOTP, &u.VerifyOTPExpiresAt, nil
	case PurposeReset:
		return &u.ResetOTP, &u.ResetOTPExpiresAt, nil
	default:
		return nil, nil, errUnknownPurpose
	}
}
