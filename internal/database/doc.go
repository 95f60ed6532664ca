// Package database provides the data access layer for the rental desk.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── cars/            # Car inventory and availability flag
//	├── customers/       # Customer roster
//	├── rentals/         # Bookings, returns and the car status changes they imply
//	└── settings/        # Key/value settings (export status)
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./car_rental.db", logger)
//
//	carsRepo := cars.NewRepository(db.DB)
//	rentalsRepo := rentals.NewRepository(db.DB)
//
//	car, err := carsRepo.GetByID(3)
//
// Every repository method is a single statement except rentals.Book,
// rentals.Return and rentals.Remove, which touch both the rentals and the
// cars table inside one transaction.
package database
