package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CreateFamily creates a family and enrolls the owner as its first member.
func (s *Store) CreateFamily(ownerID uint, name string) (*Family, error) {
	if name == "" {
		return nil, fmt.Errorf("family name cannot be empty")
	}
	f := &Family{Name: name, OwnerID: ownerID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(f).Error; err != nil {
			return err
		}
		return tx.Create(&FamilyMember{FamilyID: f.ID, UserID: ownerID, Role: "owner"}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("could not create family %q: %w", name, err)
	}
	return f, nil
}

// Family fetches one family by id.
func (s *Store) Family(id uint) (*Family, error) {
	var f Family
	if err := s.db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// FamiliesOf lists the families a user belongs to.
func (s *Store) FamiliesOf(userID uint) ([]Family, error) {
	var ff []Family
	err := s.db.
		Joins("JOIN family_members ON family_members.family_id = families.id").
		Where("family_members.user_id = ?", userID).
		Find(&ff).Error
	return ff, err
}

// IsFamilyMember reports whether a user belongs to a family.
func (s *Store) IsFamilyMember(familyID, userID uint) (bool, error) {
	var n int64
	err := s.db.Model(&FamilyMember{}).
		Where("family_id = ? AND user_id = ?", familyID, userID).
		Count(&n).Error
	return n > 0, err
}

// FamilyMembers lists the members of a family.
func (s *Store) FamilyMembers(familyID uint) ([]FamilyMember, error) {
	var mm []FamilyMember
	err := s.db.Where("family_id = ?", familyID).Order("created_at").Find(&mm).Error
	return mm, err
}

// CreateInvite records a pending invitation into a family.
func (s *Store) CreateInvite(familyID uint, email, token string, ttl time.Duration) (*FamilyInvite, error) {
	inv := &FamilyInvite{
		FamilyID:  familyID,
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.db.Create(inv).Error; err != nil {
		return nil, fmt.Errorf("could not create invite for %q: %w", email, err)
	}
	return inv, nil
}

// AcceptInvite redeems an invite token for a user, enrolling them in the
// family. Expired or already-accepted invites are rejected.
func (s *Store) AcceptInvite(token string, userID uint) (*FamilyMember, error) {
	var inv FamilyInvite
	if err := s.db.Where("token = ?", token).First(&inv).Error; err != nil {
		return nil, fmt.Errorf("unknown invite: %w", err)
	}
	if inv.AcceptedAt != nil {
		return nil, fmt.Errorf("invite already accepted")
	}
	if time.Now().After(inv.ExpiresAt) {
		return nil, fmt.Errorf("invite expired on %s", inv.ExpiresAt.Format(time.RFC3339))
	}

	m := &FamilyMember{FamilyID: inv.FamilyID, UserID: userID, Role: "member"}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&inv).Update("accepted_at", &now).Error
	})
	if err != nil {
		return nil, fmt.Errorf("could not accept invite: %w", err)
	}
	return m, nil
}
