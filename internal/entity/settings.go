package entity

// CleanupSettings controls when the batch store offers or triggers eviction.
// It never changes extraction behavior.
type CleanupSettings struct {
	AutoClearAfterDownload bool `json:"auto_clear_after_download"`
	ShowUsage              bool `json:"show_usage"`
	ManualDeleteEnabled    bool `json:"manual_delete_enabled"`
	ConfirmBeforeDelete    bool `json:"confirm_before_delete"`
}

// DefaultCleanupSettings returns the settings used when nothing is persisted.
func DefaultCleanupSettings() CleanupSettings {
	return CleanupSettings{
		AutoClearAfterDownload: false,
		ShowUsage:              true,
		ManualDeleteEnabled:    true,
		ConfirmBeforeDelete:    true,
	}
}

// CleanupSettingsPatch is a partial update; nil fields are left unchanged.
type CleanupSettingsPatch struct {
	AutoClearAfterDownload *bool `json:"auto_clear_after_download,omitempty"`
	ShowUsage              *bool `json:"show_usage,omitempty"`
	ManualDeleteEnabled    *bool `json:"manual_delete_enabled,omitempty"`
	ConfirmBeforeDelete    *bool `json:"confirm_before_delete,omitempty"`
}

// Apply merges the patch into s and returns the result.
func (p CleanupSettingsPatch) Apply(s CleanupSettings) CleanupSettings {
	if p.AutoClearAfterDownload != nil {
		s.AutoClearAfterDownload = *p.AutoClearAfterDownload
	}
	if p.ShowUsage != nil {
		s.ShowUsage = *p.ShowUsage
	}
	if p.ManualDeleteEnabled != nil {
		s.ManualDeleteEnabled = *p.ManualDeleteEnabled
	}
	if p.ConfirmBeforeDelete != nil {
		s.ConfirmBeforeDelete = *p.ConfirmBeforeDelete
	}
	return s
}
