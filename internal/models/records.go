package models

// Acquisition method tags recorded on every stand write.
const (
	MethodManual  = "manual"
	MethodAwaken  = "awaken"
	MethodUnknown = "unknown"
)

var methodDisplay = map[string]string{
	MethodManual:  "set manually",
	MethodAwaken:  "awakened",
	MethodUnknown: "unknown origin",
}

// MethodDisplay returns the user-facing label for an acquisition method.
// Records written before the tag existed decode as empty and are reported
// as unknown.
func MethodDisplay(method string) string {
	if d, ok := methodDisplay[method]; ok {
		return d
	}
	return methodDisplay[MethodUnknown]
}

// StandRecord is one owner's stand. A write replaces the previous record
// wholesale; no history is kept.
type StandRecord struct {
	Abilities         string `json:"abilities"`
	Name              string `json:"name,omitempty"`
	CreatedAt         string `json:"created_at"`
	AcquisitionMethod string `json:"acquisition_method,omitempty"`
}

// AwakenRecord is one owner's usage for a single calendar day.
type AwakenRecord struct {
	Count          int    `json:"count"`
	LastAwakenTime string `json:"last_awaken_time"`
}

// UsageHistory maps date (YYYY-MM-DD, configured timezone) to that day's
// awaken record. Only the current day's entry ever mutates.
type UsageHistory map[string]*AwakenRecord

// MigrationStatus is the persisted completion marker for the legacy→file
// migration. Written once, never reset.
type MigrationStatus struct {
	MigrationCompleted bool   `json:"migration_completed"`
	MigrationDate      string `json:"migration_date"`
	Version            int    `json:"version"`
}

// LegacySnapshot is the single-blob persistence envelope of the legacy
// key-value store. Versionless blobs from before the envelope unmarshal
// into this struct with Version zero.
type LegacySnapshot struct {
	Version       int                     `json:"version"`
	Stands        map[string]*StandRecord `json:"stands"`
	AwakenRecords map[string]UsageHistory `json:"awaken_records"`
}

const LegacySnapshotVersion = 1

func NewLegacySnapshot() *LegacySnapshot {
	return &LegacySnapshot{
		Version:       LegacySnapshotVersion,
		Stands:        make(map[string]*StandRecord),
		AwakenRecords: make(map[string]UsageHistory),
	}
}
