package services

import (
	"errors"
	"strings"

	"backend/config"
	"backend/models"

	"gorm.io/gorm"
)

// GetPreferences loads a user's stored ledger. A user without a row gets an
// empty ledger, not an error.
func GetPreferences(userID uint) (UserPrefs, error) {
	var ledger models.PreferenceLedger
	err := config.DB.Where("user_id = ?", userID).First(&ledger).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UserPrefs{}, nil
	}
	if err != nil {
		return UserPrefs{}, err
	}
	return UserPrefs{
		Avoid: splitList(ledger.Avoid),
		Limit: splitList(ledger.Limit),
		Goals: splitList(ledger.Goals),
	}, nil
}

// SavePreferences upserts the single ledger row for a user.
func SavePreferences(userID uint, prefs UserPrefs) error {
	var existing models.PreferenceLedger
	err := config.DB.Where("user_id = ?", userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ledger := models.PreferenceLedger{
			UserID: userID,
			Avoid:  joinList(prefs.Avoid),
			Limit:  joinList(prefs.Limit),
			Goals:  joinList(prefs.Goals),
		}
		return config.DB.Create(&ledger).Error
	}
	if err != nil {
		return err
	}

	existing.Avoid = joinList(prefs.Avoid)
	existing.Limit = joinList(prefs.Limit)
	existing.Goals = joinList(prefs.Goals)
	return config.DB.Save(&existing).Error
}

// MergePrefs overlays request prefs on a stored ledger. The request wins per
// list so a one-off analysis can override the standing ledger.
func MergePrefs(stored, request UserPrefs) UserPrefs {
	out := stored
	if len(request.Avoid) > 0 {
		out.Avoid = request.Avoid
	}
	if len(request.Limit) > 0 {
		out.Limit = request.Limit
	}
	if len(request.Goals) > 0 {
		out.Goals = request.Goals
	}
	return out
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}
