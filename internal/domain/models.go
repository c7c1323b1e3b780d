package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the ID before insert. IDs are generated here rather
// than by a database default so the same schema works on Postgres and on
// the SQLite databases the tests run against
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// SnapshotSource identifies how a cotation snapshot reached this service
type SnapshotSource string

const (
	// SnapshotSourcePush is a snapshot pushed by the pricing engine over HTTP
	SnapshotSourcePush SnapshotSource = "push"
	// SnapshotSourceWarehouse is a snapshot imported by the warehouse sync job
	SnapshotSourceWarehouse SnapshotSource = "warehouse"
)

// CotationSnapshot stores one CotationResults payload received from the
// pricing engine, with a few columns denormalized for listing and filtering.
// The payload itself is the source of truth for all view rendering.
type CotationSnapshot struct {
	BaseModel
	// TripRef is the agency-side reference of the trip this cotation belongs to
	TripRef string `gorm:"type:varchar(100);not null;index;column:trip_ref"`
	// Label is the display name of the cotation, e.g. "Thaïlande nord - Budget"
	Label    string `gorm:"type:varchar(200);not null"`
	Currency string `gorm:"type:varchar(3);not null;default:'EUR'"`
	// Payload is the raw CotationResults JSON exactly as received
	Payload []byte `gorm:"type:jsonb;not null"`
	// Denormalized from the payload on ingest
	PaxConfigCount int            `gorm:"not null;default:0;column:pax_config_count"`
	ErrorCount     int            `gorm:"not null;default:0;column:error_count"`
	WarningCount   int            `gorm:"not null;default:0;column:warning_count"`
	InfoCount      int            `gorm:"not null;default:0;column:info_count"`
	MissingRates   pq.StringArray `gorm:"type:text[];column:missing_rates"`
	Source         SnapshotSource `gorm:"type:varchar(20);not null;default:'push'"`
	// WarehouseRunRef is the pricing warehouse run identifier for imported
	// snapshots, used to deduplicate the sync job
	WarehouseRunRef *string    `gorm:"type:varchar(100);uniqueIndex;column:warehouse_run_ref"`
	ReceivedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP;column:received_at"`
	ArchivedAt      *time.Time `gorm:"column:archived_at"`
	// ArchivePath is the storage path of the archived payload, set when the
	// retention job archives the snapshot before deleting it
	ArchivePath string `gorm:"type:varchar(500);column:archive_path"`
}

// TableName overrides the default table name to match the migration
func (CotationSnapshot) TableName() string {
	return "cotation_snapshots"
}
