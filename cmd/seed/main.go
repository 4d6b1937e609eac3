// Seeds a local database with test users, a demo stream and the default
// settings blobs so the gift flow can be exercised end to end.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"gifting_platform/internal/domain"
	"gifting_platform/internal/settings"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()

	var senderID, receiverID int64
	if err := db.QueryRow(ctx,
		`INSERT INTO users (username, coins) VALUES ('alice', 10000) RETURNING id`,
	).Scan(&senderID); err != nil {
		log.Fatalf("seed sender: %v", err)
	}
	if err := db.QueryRow(ctx,
		`INSERT INTO users (username) VALUES ('bob') RETURNING id`,
	).Scan(&receiverID); err != nil {
		log.Fatalf("seed receiver: %v", err)
	}
	if _, err := db.Exec(ctx,
		`INSERT INTO ledger_entries (user_id, type, currency, amount) VALUES ($1, $2, 'coins', 10000)`,
		senderID, domain.EntrySeed,
	); err != nil {
		log.Fatalf("seed ledger: %v", err)
	}

	var streamID int64
	if err := db.QueryRow(ctx,
		`INSERT INTO streams (host_user_id, title, live) VALUES ($1, 'demo stream', true) RETURNING id`,
		receiverID,
	).Scan(&streamID); err != nil {
		log.Fatalf("seed stream: %v", err)
	}

	eco, _ := json.Marshal(settings.DefaultEconomy())
	lv, _ := json.Marshal(settings.DefaultLevels())
	for key, value := range map[string][]byte{
		settings.KeyGiftEconomy:   eco,
		settings.KeyLevelSettings: lv,
	} {
		if _, err := db.Exec(ctx,
			`INSERT INTO settings (key, value) VALUES ($1, $2)
			 ON CONFLICT (key) DO NOTHING`,
			key, value,
		); err != nil {
			log.Fatalf("seed settings %s: %v", key, err)
		}
	}

	log.Printf("seeded: sender=%d receiver=%d stream=%d", senderID, receiverID, streamID)
}
