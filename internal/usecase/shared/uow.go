package shared

import (
	"context"
	"time"

	"github.com/patas-felizes/grooming-api/internal/domain/appointment"
	"github.com/patas-felizes/grooming-api/internal/domain/ledger"
	"github.com/patas-felizes/grooming-api/internal/domain/subscription"
	"github.com/patas-felizes/grooming-api/internal/domain/user"
	"github.com/patas-felizes/grooming-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: Serializable transaction for read-modify-write
	// sections that must not interleave (cash close, credit counters)
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Appointments() AppointmentRepository
	Subscriptions() SubscriptionRepository
	Ledger() LedgerRepository
	Users() UserRepository
	Catalog() CatalogRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	AppointmentByID(ctx context.Context, id uuid.UUID) (*AppointmentSnapshot, error)
	SubscriptionByID(ctx context.Context, id uuid.UUID) (*SubscriptionSnapshot, error)
	SlotsByLocationAndDate(ctx context.Context, locationID uuid.UUID, date time.Time) ([]appointment.Slot, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
}

// Minimal snapshots for command read operations
type AppointmentSnapshot struct {
	ID                 uuid.UUID
	LocationID         uuid.UUID
	ClientID           *uuid.UUID
	PetID              *uuid.UUID
	PetName            string
	Date               time.Time
	StartMinutes       int
	DurationMinutes    int
	Services           []appointment.ServiceLine
	DiscountOffCents   *int64
	DiscountPercentOff *float64
	ExtraDescription   *string
	ExtraAmountCents   *int64
	ExtraPaid          bool
	ExtraMethod        *string
	TotalCents         int64
	Paid               bool
	Method             *string
	SubscriptionID     *uuid.UUID
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type SubscriptionSnapshot struct {
	ID           uuid.UUID
	ClientID     uuid.UUID
	PlanID       uuid.UUID
	PlanQuantity int
	TotalCredits int
	UsedCredits  int
	ValueCents   int64
	Paid         bool
	Method       *string
	Active       bool
}

type ServiceSnapshot struct {
	ID              uuid.UUID
	Name            string
	PriceCents      int64
	DurationMinutes int
}

type AppointmentRepository interface {
	Create(ctx context.Context, tx db.DBTX, a *appointment.Appointment) error
	Update(ctx context.Context, tx db.DBTX, a *appointment.Appointment) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type SubscriptionRepository interface {
	Create(ctx context.Context, tx db.DBTX, s *subscription.Subscription) error
	// ConsumeCredit spends one credit with a guarded update; it returns
	// subscription.ErrCreditsExhausted when no credit remains.
	ConsumeCredit(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	// RefundCredit returns one credit, floored at zero.
	RefundCredit(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	Renew(ctx context.Context, tx db.DBTX, id uuid.UUID, newTotal int, newValueCents int64) error
	Cancel(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	SetPaid(ctx context.Context, tx db.DBTX, id uuid.UUID, method string) error
}

type LedgerRepository interface {
	Insert(ctx context.Context, tx db.DBTX, t *ledger.Transaction) error
	Balance(ctx context.Context, tx db.DBTX, locationID uuid.UUID) (int64, error)
	DeleteByLocation(ctx context.Context, tx db.DBTX, locationID uuid.UUID) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) error
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}

type CatalogRepository interface {
	UpdatePrice(ctx context.Context, tx db.DBTX, serviceID uuid.UUID, priceCents int64) error
}
