package domain

// User Model
type User struct {
	ID           uint     `gorm:"primaryKey" json:"-"`                      // Primary key
	Username     string   `gorm:"unique;not null" json:"username"`          // Unique username, alphanumeric + underscore
	PasswordHash string   `gorm:"not null" json:"-"`                        // Argon2id hash, never serialized
	IsAdmin      bool     `gorm:"not null;default:false" json:"is_admin"`   // Admin flag
	AvatarHue    int16    `gorm:"not null;default:0" json:"avatar_hue"`     // Hue for the generated-avatar fallback
	HasAvatar    bool     `gorm:"not null;default:false" json:"has_avatar"` // Whether an uploaded avatar exists
	Reviews      []Review `gorm:"constraint:OnDelete:CASCADE" json:"-"`     // Owned reviews, removed with the user
}
