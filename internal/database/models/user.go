package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the credential record. The same struct is persisted by the
// MongoDB store (bson tags) and the SQL store (gorm tags).
//
// Each OTP slot is either idle (empty code, zero expiry) or pending
// (code plus expiry in Unix milliseconds); the pair is always written together.
type User struct {
	ID                 string    `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	Name               string    `gorm:"not null" bson:"name" json:"name"`
	Email              string    `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash       string    `gorm:"column:password;not null" bson:"password" json:"-"`
	IsAccountVerified  bool      `gorm:"not null;default:false" bson:"isAccountVerified" json:"isAccountVerified"`
	VerifyOTP          string    `gorm:"column:verify_otp;not null;default:''" bson:"verifyOtp" json:"-"`
	VerifyOTPExpiresAt int64     `gorm:"column:verify_otp_expires_at;not null;default:0" bson:"verifyOtpExpiresAt" json:"-"`
	ResetOTP           string    `gorm:"column:reset_otp;not null;default:''" bson:"resetOtp" json:"-"`
	ResetOTPExpiresAt  int64     `gorm:"column:reset_otp_expires_at;not null;default:0" bson:"resetOtpExpiresAt" json:"-"`
	CreatedAt          time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
