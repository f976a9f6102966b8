package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"busline/internal/seats"
	"busline/internal/shared/config"
	"busline/internal/shared/database"
	"busline/internal/trips"
	"busline/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Busline database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"seats",
		"trips",
		"users",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return nil
}

// SeedAll seeds accounts and a week of sample trips
func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return err
	}
	return s.seedTrips()
}

func (s *Seeder) seedUsers() error {
	accounts := []struct {
		firstName string
		lastName  string
		email     string
		password  string
		phone     string
		role      users.Role
	}{
		{"Admin", "User", "admin@busline.io", "Admin@123", "9876500000", users.RoleAdmin},
		{"Ravi", "Kumar", "ravi.kumar@example.com", "Ravi@1234", "9876543210", users.RoleUser},
		{"Priya", "Sharma", "priya.sharma@example.com", "Priya@1234", "9876543211", users.RoleUser},
	}

	for _, account := range accounts {
		hashed, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := users.User{
			FirstName: account.firstName,
			LastName:  account.lastName,
			Email:     account.email,
			Password:  string(hashed),
			Phone:     account.phone,
			Role:      account.role,
		}
		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", account.email, err)
		}
		fmt.Printf("  user %s (%s)\n", account.email, account.role)
	}

	return nil
}

func (s *Seeder) seedTrips() error {
	tomorrow := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)

	routes := []struct {
		origin       string
		destination  string
		departHour   int
		durationHrs  int
		totalSeats   int
		price        float64
		operator     string
		vehicleClass string
	}{
		{"Mumbai", "Pune", 6, 3, 40, 450, "Neeta Travels", "AC Seater"},
		{"Mumbai", "Pune", 14, 3, 40, 500, "Purple Bus", "AC Sleeper"},
		{"Pune", "Mumbai", 9, 3, 40, 450, "Neeta Travels", "AC Seater"},
		{"Delhi", "Jaipur", 7, 5, 36, 650, "RSRTC Deluxe", "AC Seater"},
		{"Jaipur", "Delhi", 15, 5, 36, 650, "RSRTC Deluxe", "AC Seater"},
		{"Bangalore", "Chennai", 22, 6, 30, 800, "KPN Travels", "AC Sleeper"},
		{"Chennai", "Bangalore", 22, 6, 30, 800, "KPN Travels", "AC Sleeper"},
		{"Hyderabad", "Bangalore", 21, 9, 32, 950, "Orange Tours", "AC Sleeper"},
	}

	tripRepo := trips.NewRepository(s.db.PostgreSQL)

	for day := 0; day < 7; day++ {
		for _, route := range routes {
			departure := tomorrow.AddDate(0, 0, day).Add(time.Duration(route.departHour) * time.Hour)

			trip := trips.Trip{
				Origin:        route.origin,
				Destination:   route.destination,
				DepartureTime: departure,
				ArrivalTime:   departure.Add(time.Duration(route.durationHrs) * time.Hour),
				TotalSeats:    route.totalSeats,
				Price:         route.price,
				Operator:      route.operator,
				VehicleClass:  route.vehicleClass,
			}

			// Create provisions the seat inventory too
			if err := tripRepo.Create(context.Background(), &trip); err != nil {
				return fmt.Errorf("failed to create trip %s-%s: %w", route.origin, route.destination, err)
			}
		}
	}

	var seatCount int64
	s.db.PostgreSQL.Model(&seats.Seat{}).Count(&seatCount)
	fmt.Printf("  %d trips seeded with %d seats\n", len(routes)*7, seatCount)

	return nil
}
