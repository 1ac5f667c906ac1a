package domain

import "context"

// AvoidedIngredientsKey is the preference key holding the JSON-encoded avoid-list
const AvoidedIngredientsKey = "avoided_ingredients"

// KeyValueStore defines the interface for the preference backend.
// Get reports found=false when the key has never been written.
// Health returns nil while the backend can serve reads and writes.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Health(ctx context.Context) error
	Close() error
}

// ProductClient defines the interface for the remote product database
type ProductClient interface {
	FetchProduct(ctx context.Context, barcode string) (*Product, error)
}

// BarcodeCapturer acquires a barcode from the user or a device
type BarcodeCapturer interface {
	Capture(ctx context.Context) (string, error)
}

// PreferenceStore defines the avoid-list persistence contract
type PreferenceStore interface {
	GetAvoidList(ctx context.Context) []string
	SaveAvoidList(ctx context.Context, list []string) error
	AddIngredient(ctx context.Context, term string) error
	RemoveIngredient(ctx context.Context, term string) error
}

// ScanRecorder receives scan and lookup events for metrics
type ScanRecorder interface {
	RecordLookup(outcome string)
	RecordVerdict(safe bool)
	RecordPreferenceWrite(op string, err error)
}
