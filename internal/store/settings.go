package store

import "database/sql"

// Setting keys. Values are stored as "true"/"false" strings in the settings
// key-value table.
const (
	SettingSoundEnabled           = "sound_enabled"
	SettingSpellEnabled           = "spell_enabled"
	SettingCameraDetectionEnabled = "camera_detection_enabled"
	SettingCameraFlipped          = "camera_flipped"
	SettingOCREnabled             = "ocr_enabled"
	SettingQREnabled              = "qr_enabled"
)

// settingDefaults holds the value reported for a key that was never written.
var settingDefaults = map[string]bool{
	SettingSoundEnabled:           true,
	SettingSpellEnabled:           true,
	SettingCameraDetectionEnabled: true,
	SettingCameraFlipped:          false,
	SettingOCREnabled:             true,
	SettingQREnabled:              true,
}

// KnownSetting reports whether key is a recognized settings flag.
func KnownSetting(key string) bool {
	_, ok := settingDefaults[key]
	return ok
}

// SettingKeys returns all recognized settings flag keys.
func SettingKeys() []string {
	return []string{
		SettingSoundEnabled,
		SettingSpellEnabled,
		SettingCameraDetectionEnabled,
		SettingCameraFlipped,
		SettingOCREnabled,
		SettingQREnabled,
	}
}

// SettingsRepository provides typed access to the settings key-value table.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// GetBool returns the boolean value for key, falling back to the key's
// default when it was never written.
func (r *SettingsRepository) GetBool(key string) bool {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		// Missing or unreadable settings fall back to defaults so
		// detection keeps working.
		return settingDefaults[key]
	}
	return value == "true"
}

// SetBool persists the boolean value for key.
func (r *SettingsRepository) SetBool(key string, value bool) error {
	str := "false"
	if value {
		str = "true"
	}
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, str,
	)
	return err
}

// SoundEnabled reports whether audio feedback is enabled.
func (r *SettingsRepository) SoundEnabled() bool { return r.GetBool(SettingSoundEnabled) }

// SpellEnabled reports whether spelling playback is enabled.
func (r *SettingsRepository) SpellEnabled() bool { return r.GetBool(SettingSpellEnabled) }

// CameraDetectionEnabled reports whether camera detection may run.
func (r *SettingsRepository) CameraDetectionEnabled() bool {
	return r.GetBool(SettingCameraDetectionEnabled)
}

// CameraFlipped reports whether the alternate-facing camera is selected.
func (r *SettingsRepository) CameraFlipped() bool { return r.GetBool(SettingCameraFlipped) }

// OCREnabled reports whether the text recognition adapter is active.
func (r *SettingsRepository) OCREnabled() bool { return r.GetBool(SettingOCREnabled) }

// QREnabled reports whether the QR/code recognition adapter is active.
func (r *SettingsRepository) QREnabled() bool { return r.GetBool(SettingQREnabled) }

// All returns every recognized flag with its effective value.
func (r *SettingsRepository) All() map[string]bool {
	out := make(map[string]bool, len(settingDefaults))
	for _, key := range SettingKeys() {
		out[key] = r.GetBool(key)
	}
	return out
}
