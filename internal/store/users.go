package store

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"

	"gorm.io/gorm"

	"catalog_system/internal/domain"
)

// Register validates and creates a new account. Checks run in a fixed order:
// empty fields, username shape, password confirmation, password strength,
// then the insert, whose unique constraint settles concurrent registrations.
// The returned user is the freshly created snapshot; the caller performs the
// implicit login.
func (s *Store) Register(ctx context.Context, username, password1, password2 string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password1) == "" || strings.TrimSpace(password2) == "" {
		return nil, ErrEmptyFields
	}
	if !namePattern.MatchString(username) {
		return nil, ErrIllegalUsername
	}
	if password1 != password2 {
		return nil, ErrPasswordsDiffer
	}
	if passwordScore(password1) < minPasswordScore {
		return nil, ErrWeakPassword
	}
	hash, err := hashPassword(password1)
	if err != nil {
		return nil, internal(err)
	}
	user := domain.User{
		Username:     username,
		PasswordHash: hash,
		AvatarHue:    int16(rand.IntN(360)), // fallback avatar color
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, translateDuplicate(err, ErrDuplicateUser)
	}
	return &user, nil
}

// Login verifies credentials. An unknown username and a wrong password both
// collapse to ErrIncorrectCredentials so the response carries no
// user-existence oracle.
func (s *Store) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrEmptyFields
	}
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIncorrectCredentials
	}
	if err != nil {
		return nil, internal(err)
	}
	ok, err := verifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, internal(err)
	}
	if !ok {
		return nil, ErrIncorrectCredentials
	}
	return &user, nil
}

// GetUser looks up one user by username; (nil, nil) when absent.
func (s *Store) GetUser(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, internal(err)
	}
	return &user, nil
}

// ListUsers builds one window of the member list. With a search term, users
// are filtered and ordered by trigram similarity of the username alone;
// without one they come back in insertion order. Same no-page rule as
// ListItems.
func (s *Store) ListUsers(ctx context.Context, page int, query string) (*domain.Page[domain.User], error) {
	db := s.db.WithContext(ctx)
	var total int64
	var err error
	if query != "" {
		err = db.Raw("SELECT COUNT(*) FROM users WHERE similarity(username, ?) >= ?",
			query, s.similarityThreshold).Scan(&total).Error
	} else {
		err = db.Model(&domain.User{}).Count(&total).Error
	}
	if err != nil {
		return nil, internal(err)
	}
	pages := pageCount(total, UsersPerPage)
	if page < 0 || page >= pages {
		return nil, nil
	}
	users := make([]domain.User, 0, UsersPerPage)
	if query != "" {
		err = db.Raw(`SELECT username, is_admin, avatar_hue, has_avatar FROM users
			WHERE similarity(username, ?) >= ?
			ORDER BY similarity(username, ?) DESC
			LIMIT ? OFFSET ?`,
			query, s.similarityThreshold, query, UsersPerPage, UsersPerPage*page).Scan(&users).Error
	} else {
		err = db.Model(&domain.User{}).Order("id").
			Offset(UsersPerPage * page).Limit(UsersPerPage).Find(&users).Error
	}
	if err != nil {
		return nil, internal(err)
	}
	return &domain.Page[domain.User]{
		Target:        "/users",
		Items:         users,
		CurrentPage:   page,
		NumberOfPages: pages,
		Query:         query,
	}, nil
}

// UpdateUser is a partial profile update; nil fields are left unchanged. A
// password change happens only when both password fields are present and at
// least one is non-blank, and is validated like a registration.
type UpdateUser struct {
	NewUsername  *string
	HasAvatar    *bool
	NewPassword1 *string
	NewPassword2 *string
}

// EditUser merges the provided fields into the user via COALESCE. Renames
// cascade to owned reviews through the numeric foreign key; a rename
// conflict is ErrDuplicateUser.
func (s *Store) EditUser(ctx context.Context, username string, upd UpdateUser) error {
	if blank(upd.NewUsername) {
		return ErrEmptyFields
	}
	if upd.NewUsername != nil && !namePattern.MatchString(*upd.NewUsername) {
		return ErrIllegalUsername
	}
	var passwordHash *string
	if upd.NewPassword1 != nil && upd.NewPassword2 != nil &&
		(strings.TrimSpace(*upd.NewPassword1) != "" || strings.TrimSpace(*upd.NewPassword2) != "") {
		if *upd.NewPassword1 != *upd.NewPassword2 {
			return ErrPasswordsDiffer
		}
		if passwordScore(*upd.NewPassword1) < minPasswordScore {
			return ErrWeakPassword
		}
		hash, err := hashPassword(*upd.NewPassword1)
		if err != nil {
			return internal(err)
		}
		passwordHash = &hash
	}
	err := s.db.WithContext(ctx).Exec(
		`UPDATE users SET
			username = COALESCE(?, username),
			has_avatar = COALESCE(?, has_avatar),
			password_hash = COALESCE(?, password_hash)
		WHERE username = ?`,
		upd.NewUsername, upd.HasAvatar, passwordHash, username).Error
	if err != nil {
		return translateDuplicate(err, ErrDuplicateUser)
	}
	return nil
}

// RemoveUser deletes an account and, through the FK cascade, its reviews.
// The caller must already have checked the authorization policy, including
// that the target is not an admin.
func (s *Store) RemoveUser(ctx context.Context, username string) error {
	if err := s.db.WithContext(ctx).Exec("DELETE FROM users WHERE username = ?", username).Error; err != nil {
		return internal(err)
	}
	return nil
}
