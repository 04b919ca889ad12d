package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"seatflow/internal/auctions"
	"seatflow/internal/auth"
	"seatflow/internal/events"
	"seatflow/internal/reservations"
	"seatflow/internal/seats"
	"seatflow/internal/shared/config"
	"seatflow/internal/shared/database"
	"seatflow/internal/shared/identity"
	"seatflow/pkg/cache"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Seeder struct {
	db  *database.DB
	cfg *config.Config

	auth         auth.Service
	events       events.Service
	reservations reservations.Service
	auctions     auctions.Service
}

func main() {
	fmt.Println("🌱 Starting Seatflow Database Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.PostgreSQL, &events.Event{}, &seats.Seat{}, &reservations.Reservation{}, &auctions.AuctionBid{}, &auth.Admin{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	seeder := newSeeder(db, cfg)

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// newSeeder wires the domain services without a notification broker, so
// seeded reservations and bids send nothing
func newSeeder(db *database.DB, cfg *config.Config) *Seeder {
	pg := db.PostgreSQL
	cacheService := cache.NewMemory()

	authService := auth.NewService(auth.NewRepository(pg), identity.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.JWTExpiresIn, cfg.JWT.RefreshExpiresIn))
	eventRepo := events.NewRepository(pg)
	reservationRepo := reservations.NewRepository(pg)
	seatService := seats.NewService(
		seats.NewRepository(pg),
		events.NewSeatLookupAdapter(eventRepo, cfg.Auction.DefaultVIPSeatNum),
		reservations.NewOccupancyAdapter(reservationRepo),
		cacheService,
		cfg,
	)
	eventService := events.NewService(eventRepo, seatService, authService, cacheService, cfg)
	reservationService := reservations.NewService(reservationRepo, eventService, seatService, nil, cfg)

	return &Seeder{
		db:           db,
		cfg:          cfg,
		auth:         authService,
		events:       eventService,
		reservations: reservationService,
		auctions:     auctions.NewService(auctions.NewRepository(pg), eventService, seatService, reservationService, nil, cfg),
	}
}

// CleanDatabase truncates all tables, dependents first
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"auction_bids",
		"reservations",
		"seats",
		"admins",
		"events",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	super, err := s.SeedSuperAdmin(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed super admin: %w", err)
	}

	event, err := s.SeedEvent(ctx, super)
	if err != nil {
		return fmt.Errorf("failed to seed event: %w", err)
	}

	if err := s.SeedReservations(ctx, super, event); err != nil {
		return fmt.Errorf("failed to seed reservations: %w", err)
	}

	if err := s.SeedBids(ctx, event); err != nil {
		return fmt.Errorf("failed to seed bids: %w", err)
	}

	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}
	return nil
}

func (s *Seeder) SeedSuperAdmin(ctx context.Context) (*identity.Principal, error) {
	fmt.Println("  👤 Seeding super admin...")

	username := envOr("SEED_ADMIN_USERNAME", "admin")
	admin, err := s.auth.EnsureSuperAdmin(ctx, username, envOr("SEED_ADMIN_PASSWORD", "qwerty123"), envOr("SEED_ADMIN_EMAIL", "admin@seatflow.local"))
	if err != nil {
		return nil, err
	}
	fmt.Printf("    ✅ Super admin: %s\n", admin.Username)
	return admin.Principal(), nil
}

// SeedEvent creates the demo event: two sessions over a 27-seat room laid
// out as rows of 6, 5, 5, 5 and 6, with the VIP auction on
func (s *Seeder) SeedEvent(ctx context.Context, super *identity.Principal) (*events.Event, error) {
	fmt.Println("  🎪 Seeding demo event...")

	start := time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour)
	expires := start.Add(24 * time.Hour)
	minimumBid := s.cfg.Auction.MinimumBid
	active := true
	rows := []int{6, 5, 5, 5, 6}

	event, err := s.events.CreateEvent(ctx, super, events.EventRequest{
		Name:           "Giros Indoor",
		Room:           "Sala Principal",
		StartDate:      &start,
		ExpirationDate: &expires,
		AutoDeactivate: true,
		IsActive:       &active,
		WhatsApp:       events.WhatsAppConfig{AdminPhone: "04145599026"},
		Features:       events.Features{AuctionEnabled: true, MinimumBid: &minimumBid},
		Sessions: []events.SessionRequest{
			{ID: "session1", Name: "Rodada 1", Time: "17:30", Price: 15, SeatCount: 27, RowConfiguration: rows},
			{ID: "session2", Name: "Rodada 2", Time: "19:00", Price: 15, SeatCount: 27, RowConfiguration: rows},
		},
		Admin: &events.EventAdminRequest{Username: "giros", Password: "giros2025"},
	})
	if err != nil {
		return nil, err
	}
	fmt.Printf("    ✅ Created event: %s (%s)\n", event.Name, event.ID)
	return event, nil
}

func (s *Seeder) SeedReservations(ctx context.Context, super *identity.Principal, event *events.Event) error {
	fmt.Println("  🎟️  Seeding reservations...")

	customers := []struct {
		seat       int
		session    string
		first      string
		last       string
		nationalID string
		phone      string
		confirm    bool
	}{
		{3, "session1", "María", "Pérez", "12345678", "04141234567", true},
		{8, "session1", "José", "Rojas", "20111222", "04241112233", false},
		{15, "session2", "Ana", "Díaz", "18999000", "04161234000", true},
	}

	for _, c := range customers {
		seat, err := s.seatByNumber(ctx, event, c.seat)
		if err != nil {
			return err
		}
		res, err := s.reservations.Reserve(ctx, event.ID, reservations.ReserveRequest{
			SeatID:     seat,
			SessionID:  c.session,
			FirstName:  c.first,
			LastName:   c.last,
			NationalID: c.nationalID,
			Phone:      c.phone,
		})
		if err != nil {
			return err
		}
		if c.confirm {
			if _, err := s.reservations.Confirm(ctx, super, res.ID); err != nil {
				return err
			}
		}
		fmt.Printf("    ✅ Seat %d (%s): %s\n", c.seat, c.session, res.CustomerName)
	}
	return nil
}

func (s *Seeder) SeedBids(ctx context.Context, event *events.Event) error {
	fmt.Println("  💰 Seeding auction bids...")

	bids := []auctions.PlaceBidRequest{
		{SessionID: "session1", FullName: "Luis Mora", Phone: "04145550001", Amount: 20},
		{SessionID: "session1", FullName: "Carla Gil", Phone: "04145550002", Amount: 35},
		{SessionID: "session2", FullName: "Pedro Paz", Phone: "04145550003", Amount: 18},
	}
	for _, req := range bids {
		bid, err := s.auctions.PlaceBid(ctx, event.ID, req)
		if err != nil {
			return err
		}
		fmt.Printf("    ✅ Bid %.2f by %s (%s)\n", bid.Amount, bid.FullName, bid.SessionID)
	}
	return nil
}

func (s *Seeder) seatByNumber(ctx context.Context, event *events.Event, n int) (uuid.UUID, error) {
	var seat seats.Seat
	if err := s.db.PostgreSQL.WithContext(ctx).Where("event_id = ? AND seat_number = ?", event.ID, n).First(&seat).Error; err != nil {
		return uuid.Nil, fmt.Errorf("seat %d: %w", n, err)
	}
	return seat.ID, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
