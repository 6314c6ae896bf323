package db

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Conn *pgxpool.Pool

// Init connects to Postgres
func Init() {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	var err error
	Conn, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err = Conn.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	log.Println("Connected to Postgres successfully")

	// Ensure core tables exist (idempotent, ordered by FK dependencies)
	ensureUsersTable()
	ensureCatalogTables()
	ensureOrdersTable()
	ensureAppointmentsTable()
	ensureReviewsTable()
	ensureMessagesTable()
	ensurePasswordResetsTable()
}

// ensureUsersTable creates users and guarantees the is_active gate column
func ensureUsersTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            role TEXT NOT NULL CHECK (role IN ('admin','entrepreneur','customer')),
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        )`)
	if err != nil {
		log.Printf("failed to create users table: %v", err)
		return
	}
	// Older deployments may predate is_active; backfill to TRUE
	_, _ = Conn.Exec(ctx, `ALTER TABLE users ADD COLUMN IF NOT EXISTS is_active BOOLEAN DEFAULT TRUE`)
	_, _ = Conn.Exec(ctx, `UPDATE users SET is_active = TRUE WHERE is_active IS NULL`)
}

// ensureCatalogTables creates products and services listings
func ensureCatalogTables() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS products (
            id UUID PRIMARY KEY,
            owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            name TEXT NOT NULL,
            description TEXT,
            category TEXT,
            price DOUBLE PRECISION NOT NULL CHECK (price > 0),
            shipping_available BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_products_owner ON products(owner_id);
    `)
	if err != nil {
		log.Printf("failed to create products table: %v", err)
	}

	_, err = Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS services (
            id UUID PRIMARY KEY,
            owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            business_name TEXT NOT NULL,
            category TEXT,
            working_days TEXT NOT NULL,
            start_time TEXT NOT NULL,
            end_time TEXT NOT NULL,
            slot_interval INTEGER NOT NULL CHECK (slot_interval > 0),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_services_owner ON services(owner_id);
    `)
	if err != nil {
		log.Printf("failed to create services table: %v", err)
	}
}

// ensureOrdersTable creates orders with the status constraint the lifecycle
// handlers write. Customer references are intentionally not FK-backed: account
// deletion removes the identity but keeps order history.
func ensureOrdersTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            product_id UUID NOT NULL,
            product_name TEXT NOT NULL,
            customer_id UUID NOT NULL,
            owner_id UUID NOT NULL,
            quantity INTEGER NOT NULL CHECK (quantity > 0),
            total_price DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);
        CREATE INDEX IF NOT EXISTS idx_orders_owner ON orders(owner_id);
    `)
	if err != nil {
		log.Printf("failed to create orders table: %v", err)
		return
	}

	// Keep the CHECK constraint aligned with the lifecycle states
	_, _ = Conn.Exec(ctx, `ALTER TABLE orders DROP CONSTRAINT IF EXISTS orders_status_check`)
	_, err = Conn.Exec(ctx, `
        ALTER TABLE orders
        ADD CONSTRAINT orders_status_check
        CHECK (status IN (
            'Order Received', 'Payment Received', 'Order Confirmed',
            'Order Shipped', 'Order Complete', 'Order Canceled'
        ))`)
	if err != nil {
		log.Printf("failed to update orders status constraint: %v", err)
	}
}

// ensureAppointmentsTable creates appointments plus the partial unique index
// that makes slot booking an atomic conditional write: at most one Scheduled
// row may exist per (service_id, slot_time).
func ensureAppointmentsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS appointments (
            id UUID PRIMARY KEY,
            service_id UUID NOT NULL REFERENCES services(id) ON DELETE CASCADE,
            customer_id UUID NOT NULL,
            customer_name TEXT NOT NULL,
            customer_email TEXT NOT NULL,
            customer_phone TEXT,
            slot_time TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'Scheduled' CHECK (status IN ('Scheduled','Canceled')),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_appointments_service ON appointments(service_id);
        CREATE INDEX IF NOT EXISTS idx_appointments_customer ON appointments(customer_id);
        CREATE UNIQUE INDEX IF NOT EXISTS uq_appointments_slot
            ON appointments(service_id, slot_time) WHERE status = 'Scheduled';
    `)
	if err != nil {
		log.Printf("failed to create appointments table: %v", err)
	}
}

// ensureReviewsTable creates reviews (append-only)
func ensureReviewsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS reviews (
            id UUID PRIMARY KEY,
            product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
            customer_id UUID NOT NULL,
            rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
            comment TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);
    `)
	if err != nil {
		log.Printf("failed to create reviews table: %v", err)
	}
}

// ensureMessagesTable creates the direct-message store
func ensureMessagesTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS messages (
            id UUID PRIMARY KEY,
            sender_id UUID NOT NULL,
            recipient_id UUID NOT NULL,
            content TEXT NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages(sender_id, recipient_id, created_at);
    `)
	if err != nil {
		log.Printf("failed to create messages table: %v", err)
	}
}

// ensurePasswordResetsTable creates single-use reset tokens
func ensurePasswordResetsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS password_resets (
            token UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
            used_at TIMESTAMP WITH TIME ZONE NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_password_resets_user ON password_resets(user_id);
    `)
	if err != nil {
		log.Printf("failed to create password_resets table: %v", err)
	}
}
